package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/vaughan-dsouza/betasks/internal/models"
)

func TestMemoryUsersDuplicateEmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUsers()

	if _, err := s.Create(ctx, models.User{Email: "a@x.com", Role: models.RoleUser}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.Create(ctx, models.User{Email: "a@x.com", Role: models.RoleUser}); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	u, err := s.Create(ctx, models.User{Email: "A@x.com", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("differently-cased email should be distinct: %v", err)
	}
	if u.ID != 2 {
		t.Fatalf("expected id 2, got %d", u.ID)
	}

	if _, err := s.ByEmail(ctx, "missing@x.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.ByID(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryUsersConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUsers()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Create(ctx, models.User{Email: "race@x.com"}); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("expected exactly one success, got %d", successes)
	}
	users, _ := s.List(ctx)
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}

func TestMemoryTasksOwnerScoping(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTasks()

	a1, _ := s.Create(ctx, 1, "A1", "")
	b1, _ := s.Create(ctx, 2, "B1", "")
	a2, _ := s.Create(ctx, 1, "A2", "desc")

	if a1.Completed || a1.CreatedAt.IsZero() {
		t.Fatalf("new task should be incomplete with a timestamp: %+v", a1)
	}

	own, _ := s.ListByOwner(ctx, 1)
	if len(own) != 2 || own[0].ID != a1.ID || own[1].ID != a2.ID {
		t.Fatalf("unexpected owner listing: %+v", own)
	}

	none, _ := s.ListByOwner(ctx, 3)
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", none)
	}

	if _, err := s.DeleteOwned(ctx, b1.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting another owner's task: expected ErrNotFound, got %v", err)
	}
	if _, err := s.DeleteOwned(ctx, 999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting missing task: expected ErrNotFound, got %v", err)
	}

	deleted, err := s.DeleteOwned(ctx, a1.ID, 1)
	if err != nil {
		t.Fatalf("delete own task: %v", err)
	}
	if deleted.Title != "A1" {
		t.Fatalf("unexpected deleted task %+v", deleted)
	}

	all, _ := s.ListAll(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 tasks left, got %d", len(all))
	}

	// ids are not derived from the collection size
	next, _ := s.Create(ctx, 1, "A3", "")
	if next.ID != 4 {
		t.Fatalf("expected id 4 after a delete, got %d", next.ID)
	}
}
