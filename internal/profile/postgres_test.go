package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"blushhush.app/internal/auth"
)

func TestPGFindParsesRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("select id, role, full_name, avatar_url, created_at from profiles").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "full_name", "avatar_url", "created_at"}).
			AddRow("u-1", "manager", "Aruzhan S.", nil, created))

	store := NewPGStore(db)
	p, err := store.Find(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if p.Role != auth.RoleManager || p.FullName != "Aruzhan S." {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGFindRejectsUnknownRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select id, role, full_name, avatar_url, created_at from profiles").
		WithArgs("u-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role", "full_name", "avatar_url", "created_at"}).
			AddRow("u-2", "superuser", "X", nil, time.Now()))

	store := NewPGStore(db)
	if _, err := store.Find(context.Background(), "u-2"); !errors.Is(err, auth.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRoleResolverDelegates(t *testing.T) {
	mem := NewInMemory()
	if err := mem.Create(context.Background(), &Profile{ID: "c-1", Role: auth.RoleClient, FullName: "Client"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	resolver := NewRoleResolver(mem)
	role, err := resolver.Resolve(context.Background(), "c-1")
	if err != nil || role != auth.RoleClient {
		t.Fatalf("Resolve: %v %q", err, role)
	}
	if _, err := resolver.Resolve(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
