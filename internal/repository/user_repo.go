package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// FindByEmail returns the user for an email, or nil when none exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `SELECT id, email, full_name, created_at FROM users WHERE email=$1`
	err := r.DB.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.FullName, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user together with its profile row.
func (r *UserRepository) Create(ctx context.Context, email string) (*model.User, error) {
	id := uuid.NewString()

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO users (id, email) VALUES ($1, $2)`, id, email); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO profiles (id, email) VALUES ($1, $2)`, id, email); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &model.User{ID: id, Email: email}, nil
}

// RoleFor returns the user's role, defaulting to "user" when no role row
// exists. Admin access is granted by a user_roles row, nothing else.
func (r *UserRepository) RoleFor(ctx context.Context, userID string) (string, error) {
	var role string
	query := `SELECT role FROM user_roles WHERE user_id=$1 AND role='admin'`
	err := r.DB.QueryRow(ctx, query, userID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "user", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

// AdminEmails returns the email of every account holding the admin role.
func (r *UserRepository) AdminEmails(ctx context.Context) ([]string, error) {
	query := `
		SELECT u.email
		FROM user_roles ur
		JOIN users u ON u.id = ur.user_id
		WHERE ur.role = 'admin'
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		out = append(out, email)
	}
	return out, rows.Err()
}

// GetProfile returns the profile for a user id
func (r *UserRepository) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	query := `SELECT id, email, full_name, phone, address FROM profiles WHERE id=$1`
	if err := r.DB.QueryRow(ctx, query, userID).
		Scan(&p.ID, &p.Email, &p.FullName, &p.Phone, &p.Address); err != nil {
		return nil, errors.New("profile not found")
	}
	return &p, nil
}

// UpdateProfile lets a user update their own profile record
func (r *UserRepository) UpdateProfile(ctx context.Context, userID string, fullName, phone, address *string) error {
	query := `UPDATE profiles SET full_name=$1, phone=$2, address=$3, updated_at=now() WHERE id=$4`
	tag, err := r.DB.Exec(ctx, query, fullName, phone, address, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("profile not found")
	}
	return nil
}
