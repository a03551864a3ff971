package service

import (
	"context"
	"errors"
	"time"

	"github.com/Zlobinnn/home-viewer/internal/repository"
	modelsApartment "github.com/Zlobinnn/home-viewer/pkg/apartment"
	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/jackc/pgx/v5"
)

type ApartmentServiceI interface {
	GetApartments(cityId *int64) ([]modelsApartment.Apartment, error)
	GetApartment(id int64) (*modelsApartment.Apartment, error)
	InsertApartment(apartment *modelsApartment.Apartment) (int64, error)
	UpdateApartment(apartment *modelsApartment.Apartment) error
	DeleteApartment(id int64) error
}

type ApartmentService struct {
	apartmentRepo repository.ApartmentRepositoryI
	host          string
	port          string
}

func NewApartmentService(apartmentRepo repository.ApartmentRepositoryI, host string, port string) ApartmentServiceI {
	return &ApartmentService{
		apartmentRepo: apartmentRepo,
		host:          host,
		port:          port,
	}
}

func (apartmentService *ApartmentService) GetApartments(cityId *int64) ([]modelsApartment.Apartment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	apartments, err := apartmentService.apartmentRepo.GetApartments(ctx, cityId)
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("ApartmentService.GetApartments")
		return []modelsApartment.Apartment{}, customeErr
	}
	return apartments, nil
}

func (apartmentService *ApartmentService) GetApartment(id int64) (*modelsApartment.Apartment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	apartment, err := apartmentService.apartmentRepo.GetApartment(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, err
	}
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("ApartmentService.GetApartment")
		return nil, customeErr
	}
	return apartment, nil
}

func (apartmentService *ApartmentService) InsertApartment(apartment *modelsApartment.Apartment) (int64, error) {
	if apartment.CityId == 0 {
		return 0, customerror.ErrInvalidInput
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	id, err := apartmentService.apartmentRepo.InsertApartment(ctx, apartment)
	if errors.Is(err, customerror.ErrInvalidInput) {
		return 0, err
	}
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("ApartmentService.InsertApartment")
		return 0, customeErr
	}
	return id, nil
}

func (apartmentService *ApartmentService) UpdateApartment(apartment *modelsApartment.Apartment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	err := apartmentService.apartmentRepo.UpdateApartment(ctx, apartment)
	if err == pgx.ErrNoRows {
		return err
	}
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("ApartmentService.UpdateApartment")
		return customeErr
	}
	return nil
}

func (apartmentService *ApartmentService) DeleteApartment(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	err := apartmentService.apartmentRepo.DeleteApartment(ctx, id)
	if err == pgx.ErrNoRows {
		return err
	}
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("ApartmentService.DeleteApartment")
		return customeErr
	}
	return nil
}
