package project

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"blushhush.app/internal/ids"
)

var _ Store = (*PGStore)(nil)

const projectColumns = `id, name, location, client_id, manager_id, status, start_date, end_date, progress, created_at`

// PGStore implements Store over PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, p *Project) error {
	if p.Name == "" || p.ClientID == "" || p.ManagerID == "" {
		return fmt.Errorf("%w: name, client_id and manager_id are required", ErrInvalidInput)
	}
	if p.ID == "" {
		p.ID = ids.New()
	}
	if p.Status == "" {
		p.Status = StatusPlanning
	}
	_, err := s.db.ExecContext(ctx,
		`insert into projects(id, name, location, client_id, manager_id, status, start_date, end_date, progress)
		 values($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.Name, p.Location, p.ClientID, p.ManagerID, string(p.Status),
		nullTime(p.StartDate), nullTime(p.EndDate), p.Progress,
	)
	return err
}

func (s *PGStore) Find(ctx context.Context, id string) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+projectColumns+` from projects where id=$1`, id)
	return scanProject(row)
}

func (s *PGStore) ListByManager(ctx context.Context, managerID string) ([]*Project, error) {
	return s.queryProjects(ctx,
		`select `+projectColumns+` from projects where manager_id=$1 order by created_at asc`, managerID)
}

// FindByClient returns the client's project. The source app assumes one
// active project per client and takes the oldest.
func (s *PGStore) FindByClient(ctx context.Context, clientID string) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+projectColumns+` from projects where client_id=$1 order by created_at asc limit 1`, clientID)
	return scanProject(row)
}

func (s *PGStore) List(ctx context.Context) ([]*Project, error) {
	return s.queryProjects(ctx,
		`select `+projectColumns+` from projects order by created_at asc`)
}

func (s *PGStore) SetProgress(ctx context.Context, id string, progress int) error {
	res, err := s.db.ExecContext(ctx,
		`update projects set progress=$2 where id=$1`, id, progress)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) queryProjects(ctx context.Context, query string, args ...any) ([]*Project, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Project, error) {
	var (
		p         Project
		rawStatus string
		location  sql.NullString
		start     sql.NullTime
		end       sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Name, &location, &p.ClientID, &p.ManagerID,
		&rawStatus, &start, &end, &p.Progress, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", p.ID, err)
	}
	p.Status = status
	p.Location = location.String
	p.StartDate = start.Time
	p.EndDate = end.Time
	return &p, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
