package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/vaughan-dsouza/betasks/internal/models"
)

// SQLUsers stores users in a users table. Queries are written with '?'
// placeholders and rebound for the driver in use.
type SQLUsers struct {
	DB *sqlx.DB
}

func NewSQLUsers(db *sqlx.DB) *SQLUsers {
	return &SQLUsers{DB: db}
}

func (s *SQLUsers) Create(ctx context.Context, u models.User) (models.User, error) {
	query := s.DB.Rebind(`
		INSERT INTO users (email, password_hash, first_name, role)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)

	err := s.DB.QueryRowxContext(ctx, query, u.Email, u.Password, u.FirstName, string(u.Role)).Scan(&u.ID)
	if isUniqueViolation(err) {
		return models.User{}, ErrDuplicateEmail
	}
	if err != nil {
		return models.User{}, fmt.Errorf("store: insert user: %w", err)
	}
	return u, nil
}

func (s *SQLUsers) ByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.DB.GetContext(ctx, &u, s.DB.Rebind(`
		SELECT id, email, password_hash, first_name, role
		FROM users
		WHERE email=?
	`), email)
	return u, notFound(err, "user by email")
}

func (s *SQLUsers) ByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.DB.GetContext(ctx, &u, s.DB.Rebind(`
		SELECT id, email, password_hash, first_name, role
		FROM users
		WHERE id=?
	`), id)
	return u, notFound(err, "user by id")
}

func (s *SQLUsers) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.DB.SelectContext(ctx, &users, `
		SELECT id, email, password_hash, first_name, role
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("store: list users: %w", err)
	}
	return users, nil
}

type SQLTasks struct {
	DB  *sqlx.DB
	now func() time.Time
}

func NewSQLTasks(db *sqlx.DB) *SQLTasks {
	return &SQLTasks{DB: db, now: time.Now}
}

const taskColumns = `id, owner_id, title, description, completed, created_at`

func (s *SQLTasks) ListByOwner(ctx context.Context, ownerID int64) ([]models.Task, error) {
	tasks := []models.Task{}
	err := s.DB.SelectContext(ctx, &tasks, s.DB.Rebind(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE owner_id=?
		ORDER BY id
	`), ownerID)
	if err != nil {
		return nil, fmt.Errorf("store: list tasks by owner: %w", err)
	}
	return tasks, nil
}

func (s *SQLTasks) ListAll(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	err := s.DB.SelectContext(ctx, &tasks, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list tasks: %w", err)
	}
	return tasks, nil
}

func (s *SQLTasks) Create(ctx context.Context, ownerID int64, title, description string) (models.Task, error) {
	task := models.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}

	query := s.DB.Rebind(`
		INSERT INTO tasks (owner_id, title, description, completed, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := s.DB.QueryRowxContext(ctx, query, ownerID, title, description, false, task.CreatedAt).
		Scan(&task.ID)
	if err != nil {
		return models.Task{}, fmt.Errorf("store: insert task: %w", err)
	}
	return task, nil
}

func (s *SQLTasks) DeleteOwned(ctx context.Context, id, ownerID int64) (models.Task, error) {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	var task models.Task
	err = tx.GetContext(ctx, &task, tx.Rebind(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id=? AND owner_id=?
	`), id, ownerID)
	if err != nil {
		return models.Task{}, notFound(err, "task")
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM tasks WHERE id=?`), id); err != nil {
		return models.Task{}, fmt.Errorf("store: delete task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Task{}, fmt.Errorf("store: commit: %w", err)
	}
	return task, nil
}

func notFound(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("store: %s: %w", what, err)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}
