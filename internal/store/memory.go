package store

import (
	"context"
	"sync"
	"time"

	"github.com/vaughan-dsouza/betasks/internal/models"
)

// MemoryUsers keeps users in insertion order for the life of the process.
type MemoryUsers struct {
	mu      sync.RWMutex
	nextID  int64
	users   []models.User
	byEmail map[string]int
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{byEmail: make(map[string]int)}
}

func (s *MemoryUsers) Create(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[u.Email]; ok {
		return models.User{}, ErrDuplicateEmail
	}

	s.nextID++
	u.ID = s.nextID
	s.byEmail[u.Email] = len(s.users)
	s.users = append(s.users, u)
	return u, nil
}

func (s *MemoryUsers) ByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byEmail[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return s.users[i], nil
}

func (s *MemoryUsers) ByID(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryUsers) List(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// MemoryTasks keeps tasks in insertion order. Ids are never reused after a
// delete.
type MemoryTasks struct {
	mu     sync.RWMutex
	nextID int64
	tasks  []models.Task
	now    func() time.Time
}

func NewMemoryTasks() *MemoryTasks {
	return &MemoryTasks{now: time.Now}
}

func (s *MemoryTasks) ListByOwner(_ context.Context, ownerID int64) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Task{}
	for _, t := range s.tasks {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryTasks) ListAll(_ context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (s *MemoryTasks) Create(_ context.Context, ownerID int64, title, description string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t := models.Task{
		ID:          s.nextID,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *MemoryTasks) DeleteOwned(_ context.Context, id, ownerID int64) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID != id {
			continue
		}
		if t.OwnerID != ownerID {
			break
		}
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		return t, nil
	}
	return models.Task{}, ErrNotFound
}
