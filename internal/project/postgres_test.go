package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGFindByClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	created := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("select id, name, location, client_id, manager_id, status, start_date, end_date, progress, created_at from projects where client_id").
		WithArgs("client-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "client_id", "manager_id", "status", "start_date", "end_date", "progress", "created_at"}).
			AddRow("p-1", "Villa Arman", "Almaty", "client-1", "mgr-1", "active", created, nil, 40, created))

	store := NewPGStore(db)
	p, err := store.FindByClient(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("FindByClient: %v", err)
	}
	if p.Status != StatusActive || p.Progress != 40 {
		t.Fatalf("unexpected project: %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGFindRejectsUnknownStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select .+ from projects where id").
		WithArgs("p-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "client_id", "manager_id", "status", "start_date", "end_date", "progress", "created_at"}).
			AddRow("p-2", "X", nil, "c", "m", "archived?", nil, nil, 0, time.Now()))

	store := NewPGStore(db)
	if _, err := store.Find(context.Background(), "p-2"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestPGSetProgress(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("update projects set progress").
		WithArgs("p-1", 65).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewPGStore(db)
	if err := store.SetProgress(context.Background(), "p-1", 65); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}

	mock.ExpectExec("update projects set progress").
		WithArgs("ghost", 10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := store.SetProgress(context.Background(), "ghost", 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
