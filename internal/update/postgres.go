package update

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"blushhush.app/internal/ids"
)

var _ Store = (*PGStore)(nil)

const recordColumns = `id, project_id, title, description, date, images, created_by, created_at`

// PGStore implements Store over PostgreSQL. Images are stored as a
// jsonb array so the reference order survives round trips.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, rec *Record) error {
	if rec.ProjectID == "" || rec.Title == "" {
		return fmt.Errorf("%w: project id and title are required", ErrValidation)
	}
	if rec.ID == "" {
		rec.ID = ids.New()
	}
	images, err := json.Marshal(rec.Images)
	if err != nil {
		return fmt.Errorf("marshal images: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`insert into project_updates(id, project_id, title, description, date, images, created_by)
		 values($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, rec.ProjectID, rec.Title, rec.Description, rec.Date, images, rec.CreatedBy,
	)
	return err
}

func (s *PGStore) Find(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+recordColumns+` from project_updates where id=$1`, id)
	return scanRecord(row)
}

func (s *PGStore) ListByProject(ctx context.Context, projectID string) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`select `+recordColumns+` from project_updates where project_id=$1 order by date desc, created_at desc`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		rec       Record
		rawImages []byte
		createdBy sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.ProjectID, &rec.Title, &rec.Description,
		&rec.Date, &rawImages, &createdBy, &rec.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(rawImages) > 0 {
		if err := json.Unmarshal(rawImages, &rec.Images); err != nil {
			return nil, fmt.Errorf("update %s: images: %w", rec.ID, err)
		}
	}
	rec.CreatedBy = createdBy.String
	return &rec, nil
}
