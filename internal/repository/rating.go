package repository

import (
	"context"
	"errors"

	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/Zlobinnn/home-viewer/pkg/rating"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RatingRepositoryI interface {
	CreateTables(ctx context.Context) error
	UpsertRating(ctx context.Context, rating *rating.Rating) error
	GetRatings(ctx context.Context, apartmentId int64) ([]rating.Rating, error)
}

type RatingRepository struct {
	Pool *pgxpool.Pool
	Host string
	Port string
}

func NewRatingRepository(pool *pgxpool.Pool, host string, port string) RatingRepositoryI {
	return &RatingRepository{
		Pool: pool,
		Host: host,
		Port: port,
	}
}

func (ratingRepo *RatingRepository) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS rating (
		id BIGSERIAL PRIMARY KEY,
		apartment_id BIGINT NOT NULL REFERENCES apartment(id) ON DELETE CASCADE,
		user_token TEXT NOT NULL,
		rating DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT rating_token_apartment_unique UNIQUE (user_token, apartment_id)
	);`
	_, err := ratingRepo.Pool.Exec(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("ratingRepo.CreateTables", ratingRepo.Host+":"+ratingRepo.Port, err.Error())
	}

	createIndexQuery := `CREATE INDEX IF NOT EXISTS rating_apartment_id_idx ON rating(apartment_id);`
	_, err = ratingRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("ratingRepo.CreateTables", ratingRepo.Host+":"+ratingRepo.Port, err.Error())
	}
	return nil
}

// UpsertRating stores one rating row per (user_token, apartment_id) pair.
// The conflict clause makes concurrent first submissions from the same token
// serialize inside Postgres, so there is no check-then-act window here.
func (ratingRepo *RatingRepository) UpsertRating(ctx context.Context, r *rating.Rating) error {
	query := `INSERT INTO rating (apartment_id, user_token, rating) VALUES ($1, $2, $3)
	ON CONFLICT ON CONSTRAINT rating_token_apartment_unique
	DO UPDATE SET rating = EXCLUDED.rating, updated_at = CURRENT_TIMESTAMP
	RETURNING id, created_at, updated_at`
	err := ratingRepo.Pool.QueryRow(ctx, query, r.ApartmentId, r.UserToken, r.Rating).
		Scan(&r.Id, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// unknown apartment_id
			if pgErr.Code == "23503" {
				return customerror.ErrInvalidInput
			}
		}
		return customerror.NewError("ratingRepo.UpsertRating", ratingRepo.Host+":"+ratingRepo.Port, err.Error())
	}
	return nil
}

func (ratingRepo *RatingRepository) GetRatings(ctx context.Context, apartmentId int64) ([]rating.Rating, error) {
	query := `SELECT id, apartment_id, user_token, rating, created_at, updated_at
	FROM rating WHERE apartment_id = $1 ORDER BY created_at DESC;`
	rows, err := ratingRepo.Pool.Query(ctx, query, apartmentId)
	if err != nil {
		return nil, customerror.NewError("ratingRepo.GetRatings", ratingRepo.Host+":"+ratingRepo.Port, err.Error())
	}
	ratings := []rating.Rating{}
	for rows.Next() {
		var r rating.Rating
		err := rows.Scan(&r.Id, &r.ApartmentId, &r.UserToken, &r.Rating, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, customerror.NewError("ratingRepo.GetRatings", ratingRepo.Host+":"+ratingRepo.Port, err.Error())
		}
		ratings = append(ratings, r)
	}
	return ratings, nil
}
