package profile

import (
	"context"
	"database/sql"
	"fmt"

	"blushhush.app/internal/auth"
	"blushhush.app/internal/ids"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store over PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, p *Profile) error {
	if p.ID == "" {
		p.ID = ids.New()
	}
	if !p.Role.Valid() {
		return fmt.Errorf("%w: role %q", ErrInvalidInput, p.Role)
	}
	_, err := s.db.ExecContext(ctx,
		`insert into profiles(id, role, full_name, avatar_url) values($1,$2,$3,$4)`,
		p.ID, string(p.Role), p.FullName, p.AvatarURL,
	)
	return err
}

func (s *PGStore) Find(ctx context.Context, id string) (*Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, role, full_name, avatar_url, created_at from profiles where id=$1`, id,
	)
	return scanProfile(row)
}

func (s *PGStore) ListByRole(ctx context.Context, role auth.Role) ([]*Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, role, full_name, avatar_url, created_at from profiles where role=$1 order by created_at asc`,
		string(role),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
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

// scanProfile parses a row fail-closed: a row carrying an unknown role is
// an error, not a default.
func scanProfile(row rowScanner) (*Profile, error) {
	var (
		p       Profile
		rawRole string
		avatar  sql.NullString
	)
	if err := row.Scan(&p.ID, &rawRole, &p.FullName, &avatar, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	role, err := auth.ParseRole(rawRole)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.ID, err)
	}
	p.Role = role
	p.AvatarURL = avatar.String
	return &p, nil
}
