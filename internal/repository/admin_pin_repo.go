package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

type AdminPinRepository struct {
	DB *pgxpool.Pool
}

func NewAdminPinRepository(db *pgxpool.Pool) *AdminPinRepository {
	return &AdminPinRepository{DB: db}
}

// DeleteByEmail clears any outstanding challenge for the email. The issuer
// calls this before inserting so at most one live row exists per email.
func (r *AdminPinRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM admin_pins WHERE email=$1`, email)
	return err
}

func (r *AdminPinRepository) Create(ctx context.Context, email, pin string, expiresAt time.Time) error {
	row := model.AdminPin{
		ID:        uuid.NewString(),
		Email:     email,
		Pin:       pin,
		ExpiresAt: expiresAt,
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO admin_pins (id, email, pin, expires_at)
		VALUES ($1, $2, $3, $4)
	`, row.ID, row.Email, row.Pin, row.ExpiresAt)
	return err
}

// Consume atomically deletes the matching live challenge and reports whether
// one existed. A single conditional DELETE keeps two concurrent verification
// attempts from both passing with the same code.
func (r *AdminPinRepository) Consume(ctx context.Context, email, pin string, now time.Time) (bool, error) {
	tag, err := r.DB.Exec(ctx, `
		DELETE FROM admin_pins
		WHERE email=$1 AND pin=$2 AND expires_at > $3
	`, email, pin, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// PurgeExpired removes rows whose expiry has passed. Run from the cron sweep;
// nothing else depends on it since lookups filter on expires_at anyway.
func (r *AdminPinRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM admin_pins WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
