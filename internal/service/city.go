package service

import (
	"context"
	"errors"
	"time"

	"github.com/Zlobinnn/home-viewer/internal/repository"
	modelsCity "github.com/Zlobinnn/home-viewer/pkg/city"
	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/jackc/pgx/v5"
)

type CityServiceI interface {
	GetCities() ([]modelsCity.City, error)
	InsertCity(city *modelsCity.City) (int64, error)
	DeleteCity(id int64) error
}

type CityService struct {
	cityRepo repository.CityRepositoryI
	host     string
	port     string
}

func NewCityService(cityRepo repository.CityRepositoryI, host string, port string) CityServiceI {
	return &CityService{
		cityRepo: cityRepo,
		host:     host,
		port:     port,
	}
}

func (cityService *CityService) GetCities() ([]modelsCity.City, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	cities, err := cityService.cityRepo.GetCities(ctx)
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("CityService.GetCities")
		return []modelsCity.City{}, customeErr
	}
	return cities, nil
}

func (cityService *CityService) InsertCity(city *modelsCity.City) (int64, error) {
	if city.Name == "" {
		return 0, customerror.ErrInvalidInput
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	id, err := cityService.cityRepo.InsertCity(ctx, city)
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("CityService.InsertCity")
		return 0, customeErr
	}
	return id, nil
}

func (cityService *CityService) DeleteCity(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	err := cityService.cityRepo.DeleteCity(ctx, id)
	if err == pgx.ErrNoRows || errors.Is(err, customerror.ErrConflict) {
		return err
	}
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("CityService.DeleteCity")
		return customeErr
	}
	return nil
}
