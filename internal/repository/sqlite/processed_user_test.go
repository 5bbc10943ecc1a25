package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msomdec/dataproc/internal/domain"
	"github.com/msomdec/dataproc/internal/repository/sqlite"
)

var _ domain.ProcessedUserRepository = (*sqlite.ProcessedUserRepository)(nil)

func testUser(id string, age int) *domain.ProcessedUser {
	return &domain.ProcessedUser{
		UserID:      id,
		Name:        "Ann",
		Email:       "ann@example.com",
		Age:         age,
		NameLength:  3,
		EmailDomain: "example.com",
		AgeCategory: domain.CategorizeAge(age),
		NameUpper:   "ANN",
		EmailUpper:  "ANN@EXAMPLE.COM",
		AgeSquared:  age * age,
		IsAdult:     age >= 18,
		ProcessedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestProcessedUserRepository_UpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := db.ProcessedUsers()
	ctx := context.Background()

	want := testUser("u1", 30)
	if err := repo.Upsert(ctx, want); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != want.Name || got.EmailDomain != want.EmailDomain {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got.AgeCategory != domain.AgeCategoryAdult {
		t.Fatalf("expected adult category, got %q", got.AgeCategory)
	}
	if !got.IsAdult {
		t.Fatal("expected IsAdult to be true")
	}
}

func TestProcessedUserRepository_Get_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := db.ProcessedUsers()

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProcessedUserRepository_Upsert_KeepsListPosition(t *testing.T) {
	db := newTestDB(t)
	repo := db.ProcessedUsers()
	ctx := context.Background()

	for _, id := range []string{"u1", "u2", "u3"} {
		if err := repo.Upsert(ctx, testUser(id, 30)); err != nil {
			t.Fatalf("Upsert %s: %v", id, err)
		}
	}

	replaced := testUser("u1", 70)
	replaced.Name = "Replaced"
	replaced.NameUpper = "REPLACED"
	replaced.NameLength = 8
	if err := repo.Upsert(ctx, replaced); err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	if users[0].UserID != "u1" || users[0].Name != "Replaced" {
		t.Fatalf("expected replaced u1 first, got %+v", users[0])
	}
	if users[0].AgeCategory != domain.AgeCategorySenior {
		t.Fatalf("expected senior category after replace, got %q", users[0].AgeCategory)
	}
}

func TestProcessedUserRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := db.ProcessedUsers()
	ctx := context.Background()

	if err := repo.Upsert(ctx, testUser("u1", 30)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d rows", count)
	}
}
