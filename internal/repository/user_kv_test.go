package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dayoung-lee/taskboard/internal/model"
	"github.com/dayoung-lee/taskboard/internal/repository"
	"github.com/dayoung-lee/taskboard/internal/storage"
)

func TestKVUser_SeedsDemoAccount(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewKVUser(storage.NewMemory(), true)

	user, err := repo.GetByUsername(ctx, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != repository.DemoUserID {
		t.Errorf("expected demo user id %q, got %q", repository.DemoUserID, user.ID)
	}
	if user.Password != "test123" {
		t.Errorf("expected demo password, got %q", user.Password)
	}
}

func TestKVUser_NoSeedStartsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewKVUser(storage.NewMemory(), false)

	_, err := repo.GetByUsername(ctx, "test")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestKVUser_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewKVUser(storage.NewMemory(), true)

	created, err := repo.Create(ctx, model.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}

	byName, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	for _, u := range []model.User{byName, byEmail, byID} {
		if u.ID != created.ID {
			t.Errorf("expected id %q, got %q", created.ID, u.ID)
		}
	}
}

func TestKVUser_CreateAssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewKVUser(storage.NewMemory(), false)

	a, err := repo.Create(ctx, model.User{Username: "a", Email: "a@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := repo.Create(ctx, model.User{Username: "b", Email: "b@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.ID == b.ID {
		t.Errorf("expected distinct ids, both got %q", a.ID)
	}
}

func TestKVUser_TableSurvivesReconstruction(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	first := repository.NewKVUser(store, true)
	created, err := first.Create(ctx, model.User{Username: "bob", Email: "bob@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := repository.NewKVUser(store, true)
	got, err := second.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "bob" {
		t.Errorf("expected username bob, got %q", got.Username)
	}
}
