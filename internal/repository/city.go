package repository

import (
	"context"
	"errors"

	"github.com/Zlobinnn/home-viewer/pkg/city"
	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CityRepositoryI interface {
	CreateTables(ctx context.Context) error
	GetCities(ctx context.Context) ([]city.City, error)
	InsertCity(ctx context.Context, city *city.City) (int64, error)
	DeleteCity(ctx context.Context, id int64) error
}

type CityRepository struct {
	Pool *pgxpool.Pool
	Host string
	Port string
}

func NewCityRepository(pool *pgxpool.Pool, host string, port string) CityRepositoryI {
	return &CityRepository{
		Pool: pool,
		Host: host,
		Port: port,
	}
}

func (cityRepo *CityRepository) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS city (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := cityRepo.Pool.Exec(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("cityRepo.CreateTables", cityRepo.Host+":"+cityRepo.Port, err.Error())
	}
	return nil
}

func (cityRepo *CityRepository) GetCities(ctx context.Context) ([]city.City, error) {
	query := `SELECT city.id, city.name, city.description, city.created_at, COUNT(apartment.id)
	FROM city LEFT JOIN apartment ON apartment.city_id = city.id
	GROUP BY city.id
	ORDER BY city.id;`
	rows, err := cityRepo.Pool.Query(ctx, query)
	if err != nil {
		return nil, customerror.NewError("cityRepo.GetCities", cityRepo.Host+":"+cityRepo.Port, err.Error())
	}
	cities := []city.City{}
	for rows.Next() {
		var city city.City
		err := rows.Scan(
			&city.Id,
			&city.Name,
			&city.Description,
			&city.CreatedAt,
			&city.ApartmentsCount,
		)
		if err != nil {
			return nil, customerror.NewError("cityRepo.GetCities", cityRepo.Host+":"+cityRepo.Port, err.Error())
		}
		cities = append(cities, city)
	}
	return cities, nil
}

func (cityRepo *CityRepository) InsertCity(ctx context.Context, city *city.City) (int64, error) {
	query := `INSERT INTO city (name, description) VALUES ($1, $2) RETURNING id, created_at`
	err := cityRepo.Pool.QueryRow(ctx, query, city.Name, city.Description).Scan(&city.Id, &city.CreatedAt)
	if err != nil {
		return 0, customerror.NewError("cityRepo.InsertCity", cityRepo.Host+":"+cityRepo.Port, err.Error())
	}
	return city.Id, nil
}

func (cityRepo *CityRepository) DeleteCity(ctx context.Context, id int64) error {
	query := `DELETE FROM city WHERE id = $1`
	command, err := cityRepo.Pool.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// apartments still reference the city
			if pgErr.Code == "23503" {
				return customerror.ErrConflict
			}
		}
		return customerror.NewError("cityRepo.DeleteCity", cityRepo.Host+":"+cityRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
