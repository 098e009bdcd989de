package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"biolink/internal/database"
	"biolink/internal/database/postgres"
	"biolink/internal/domain/profile"

	"github.com/google/uuid"
)

const profileColumns = `id, slug, full_name, specialty, bio, photo_url, buttons, status, created_at, activated_at`

type PostgresProfileRepository struct {
	db database.DB
}

var _ profile.Repository = (*PostgresProfileRepository)(nil)

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// FindBySlug prefers the active record, then the newest one. Older rows for
// the same slug are history (abandoned or cancelled signups).
func (r *PostgresProfileRepository) FindBySlug(ctx context.Context, slug string) (*profile.Record, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles
		 WHERE slug = $1
		 ORDER BY (status = 'active') DESC, created_at DESC
		 LIMIT 1`,
		slug,
	)
	rec, err := scanProfile(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find profile by slug: %w", err)
	}
	return &rec, nil
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Record, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	rec, err := scanProfile(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return profile.Record{}, profile.ErrNotFound
		}
		return profile.Record{}, fmt.Errorf("get profile: %w", err)
	}
	return rec, nil
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p profile.Record) error {
	buttons, err := encodeButtons(p.Buttons)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO profiles (id, slug, full_name, specialty, bio, photo_url, buttons, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Slug, p.FullName, p.Specialty, p.Bio, p.PhotoURL, buttons, string(p.Status), p.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return profile.ErrSlugConflict
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// Activate confirms payment for a pending reservation. The row is locked
// while its status is checked, so the not-found / not-pending answer and the
// update see the same state. The partial unique index on active slugs
// rejects the second of two racing activations.
func (r *PostgresProfileRepository) Activate(ctx context.Context, id uuid.UUID, at time.Time) (profile.Record, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return profile.Record{}, fmt.Errorf("activate profile: begin: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	var status string
	if err := tx.QueryRow(ctx, `SELECT status FROM profiles WHERE id = $1 FOR UPDATE`, id).Scan(&status); err != nil {
		if postgres.IsNoRows(err) {
			return profile.Record{}, profile.ErrNotFound
		}
		return profile.Record{}, fmt.Errorf("activate profile: lock: %w", err)
	}
	if profile.Status(status) != profile.StatusPendingPayment {
		return profile.Record{}, profile.ErrNotPending
	}

	rec, err := scanProfile(tx.QueryRow(ctx,
		`UPDATE profiles
		 SET status = 'active', activated_at = $2
		 WHERE id = $1
		 RETURNING `+profileColumns,
		id, at,
	))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return profile.Record{}, profile.ErrSlugConflict
		}
		return profile.Record{}, fmt.Errorf("activate profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if postgres.IsUniqueViolation(err) {
			return profile.Record{}, profile.ErrSlugConflict
		}
		return profile.Record{}, fmt.Errorf("activate profile: commit: %w", err)
	}
	committed = true
	return rec, nil
}

func (r *PostgresProfileRepository) ListStaleReservations(ctx context.Context, createdBefore time.Time, limit int) ([]profile.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles
		 WHERE status = 'pending_payment' AND created_at <= $1
		 ORDER BY created_at ASC
		 LIMIT $2`,
		createdBefore, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list stale reservations: %w", err)
	}
	defer rows.Close()

	out := make([]profile.Record, 0)
	for rows.Next() {
		rec, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stale reservation: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProfile(row database.Row) (profile.Record, error) {
	var (
		rec     profile.Record
		status  string
		buttons []byte
	)
	err := row.Scan(
		&rec.ID,
		&rec.Slug,
		&rec.FullName,
		&rec.Specialty,
		&rec.Bio,
		&rec.PhotoURL,
		&buttons,
		&status,
		&rec.CreatedAt,
		&rec.ActivatedAt,
	)
	if err != nil {
		return profile.Record{}, err
	}
	rec.Status = profile.Status(status)
	if len(buttons) > 0 {
		if err := json.Unmarshal(buttons, &rec.Buttons); err != nil {
			return profile.Record{}, fmt.Errorf("decode buttons: %w", err)
		}
	}
	return rec, nil
}

func encodeButtons(buttons []profile.Button) ([]byte, error) {
	if buttons == nil {
		buttons = []profile.Button{}
	}
	b, err := json.Marshal(buttons)
	if err != nil {
		return nil, fmt.Errorf("encode buttons: %w", err)
	}
	return b, nil
}
