package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

type ReviewRepository struct {
	DB *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *model.Review) (string, error) {
	id := uuid.NewString()
	query := `INSERT INTO reviews (id, user_id, name, comment, rating, approved) VALUES ($1, $2, $3, $4, $5, false)`
	if _, err := r.DB.Exec(ctx, query, id, rv.UserID, rv.Name, rv.Comment, rv.Rating); err != nil {
		return "", err
	}
	return id, nil
}

// List returns reviews, optionally restricted to approved ones (public view).
func (r *ReviewRepository) List(ctx context.Context, approvedOnly bool) ([]model.Review, error) {
	query := `SELECT id, user_id, name, comment, rating, approved, created_at FROM reviews`
	if approvedOnly {
		query += ` WHERE approved`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.Name, &rv.Comment, &rv.Rating, &rv.Approved, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *ReviewRepository) Approve(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE reviews SET approved=true WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("review not found")
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("review not found")
	}
	return nil
}
