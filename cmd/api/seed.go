package main

import (
	"context"
	"log"

	"github.com/vaughan-dsouza/betasks/internal/auth"
	"github.com/vaughan-dsouza/betasks/internal/models"
	"github.com/vaughan-dsouza/betasks/internal/store"
)

// seed creates the default users and, when the task table is empty, one
// task for each of them.
func seed(ctx context.Context, creds *auth.Credentials, tasks store.Tasks, password string) error {
	users, err := creds.Seed(ctx, auth.DefaultSeedUsers, password)
	if err != nil {
		return err
	}
	log.Printf("[seed] %d users ready", len(users))

	existing, err := tasks.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, u := range users {
		title, desc := "User Task", "Regular user task"
		if u.Role == models.RoleAdmin {
			title, desc = "Admin Task", "Admin only task"
		}
		if _, err := tasks.Create(ctx, u.ID, title, desc); err != nil {
			return err
		}
	}
	return nil
}
