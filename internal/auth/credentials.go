// Package auth registers users and checks their passwords.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/betasks/internal/models"
	"github.com/vaughan-dsouza/betasks/internal/store"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Credentials struct {
	Users store.Users
	cost  int
	// compared against when the email is unknown so both failure paths do a
	// bcrypt comparison
	dummyHash []byte
}

// NewCredentials uses bcrypt.DefaultCost when cost is zero.
func NewCredentials(users store.Users, cost int) (*Credentials, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("auth: dummy hash: %w", err)
	}
	return &Credentials{Users: users, cost: cost, dummyHash: dummy}, nil
}

// Register hashes password and stores a new user. role may be empty.
func (c *Credentials) Register(ctx context.Context, email, password, firstName, role string) (models.User, error) {
	r, err := models.ParseRole(role)
	if err != nil {
		return models.User{}, err
	}

	if _, err := c.Users.ByEmail(ctx, email); err == nil {
		return models.User{}, store.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("auth: hash password: %w", err)
	}

	// the store re-checks the email under its own lock or constraint
	return c.Users.Create(ctx, models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: firstName,
		Role:      r,
	})
}

func (c *Credentials) Verify(ctx context.Context, email, password string) (models.User, error) {
	u, err := c.Users.ByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(c.dummyHash, []byte(password))
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (c *Credentials) FindByID(ctx context.Context, id int64) (models.User, error) {
	return c.Users.ByID(ctx, id)
}

type SeedUser struct {
	Email     string
	FirstName string
	Role      models.Role
}

// DefaultSeedUsers are created at startup with a shared password.
var DefaultSeedUsers = []SeedUser{
	{Email: "admin@test.com", FirstName: "Admin", Role: models.RoleAdmin},
	{Email: "user@test.com", FirstName: "User", Role: models.RoleUser},
}

// Seed registers each user synchronously. Existing emails are left alone so
// a persistent store can be seeded on every start.
func (c *Credentials) Seed(ctx context.Context, users []SeedUser, password string) ([]models.User, error) {
	out := make([]models.User, 0, len(users))
	for _, s := range users {
		u, err := c.Register(ctx, s.Email, password, s.FirstName, string(s.Role))
		if errors.Is(err, store.ErrDuplicateEmail) {
			if u, err = c.Users.ByEmail(ctx, s.Email); err != nil {
				return nil, err
			}
			log.Printf("[seed] %s already present", s.Email)
			out = append(out, u)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("auth: seed %s: %w", s.Email, err)
		}
		out = append(out, u)
	}
	return out, nil
}
