package service

import (
	"context"
	"errors"
	"time"

	"github.com/Zlobinnn/home-viewer/internal/repository"
	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	modelsRating "github.com/Zlobinnn/home-viewer/pkg/rating"
)

type RatingServiceI interface {
	SubmitRating(apartmentId int64, value float64, userToken string) (*modelsRating.Rating, error)
	GetRatings(apartmentId int64) ([]modelsRating.Rating, error)
}

type RatingService struct {
	ratingRepo repository.RatingRepositoryI
	host       string
	port       string
}

func NewRatingService(ratingRepo repository.RatingRepositoryI, host string, port string) RatingServiceI {
	return &RatingService{
		ratingRepo: ratingRepo,
		host:       host,
		port:       port,
	}
}

// SubmitRating records the token's rating for an apartment. The first
// submission creates the row, every later one from the same token replaces
// the value in place; the repository upsert guarantees a single row per
// (token, apartment) pair.
func (ratingService *RatingService) SubmitRating(apartmentId int64, value float64, userToken string) (*modelsRating.Rating, error) {
	if apartmentId <= 0 || userToken == "" {
		return nil, customerror.ErrInvalidInput
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	r := modelsRating.Rating{
		ApartmentId: apartmentId,
		UserToken:   userToken,
		Rating:      value,
	}
	err := ratingService.ratingRepo.UpsertRating(ctx, &r)
	if errors.Is(err, customerror.ErrInvalidInput) {
		return nil, err
	}
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("RatingService.SubmitRating")
		return nil, customeErr
	}
	return &r, nil
}

func (ratingService *RatingService) GetRatings(apartmentId int64) ([]modelsRating.Rating, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ratings, err := ratingService.ratingRepo.GetRatings(ctx, apartmentId)
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("RatingService.GetRatings")
		return []modelsRating.Rating{}, customeErr
	}
	return ratings, nil
}
