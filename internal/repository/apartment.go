package repository

import (
	"context"
	"errors"

	"github.com/Zlobinnn/home-viewer/pkg/apartment"
	"github.com/Zlobinnn/home-viewer/pkg/city"
	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/Zlobinnn/home-viewer/pkg/rating"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApartmentRepositoryI interface {
	CreateTables(ctx context.Context) error
	GetApartments(ctx context.Context, cityId *int64) ([]apartment.Apartment, error)
	GetApartment(ctx context.Context, id int64) (*apartment.Apartment, error)
	InsertApartment(ctx context.Context, apartment *apartment.Apartment) (int64, error)
	UpdateApartment(ctx context.Context, apartment *apartment.Apartment) error
	DeleteApartment(ctx context.Context, id int64) error
}

type ApartmentRepository struct {
	Pool *pgxpool.Pool
	Host string
	Port string
}

func NewApartmentRepository(pool *pgxpool.Pool, host string, port string) ApartmentRepositoryI {
	return &ApartmentRepository{
		Pool: pool,
		Host: host,
		Port: port,
	}
}

func (apartmentRepo *ApartmentRepository) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS apartment (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION,
		address TEXT NOT NULL DEFAULT '',
		rooms INTEGER,
		floor INTEGER,
		total_floors INTEGER,
		area DOUBLE PRECISION,
		pros TEXT[] NOT NULL DEFAULT '{}',
		cons TEXT[] NOT NULL DEFAULT '{}',
		image_url TEXT,
		is_hidden BOOLEAN NOT NULL DEFAULT FALSE,
		city_id BIGINT NOT NULL REFERENCES city(id),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := apartmentRepo.Pool.Exec(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("apartmentRepo.CreateTables", apartmentRepo.Host+":"+apartmentRepo.Port, err.Error())
	}

	createIndexQuery := `CREATE INDEX IF NOT EXISTS apartment_city_id_idx ON apartment(city_id);`
	_, err = apartmentRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("apartmentRepo.CreateTables", apartmentRepo.Host+":"+apartmentRepo.Port, err.Error())
	}

	createIndexQuery = `CREATE INDEX IF NOT EXISTS apartment_created_at_idx ON apartment(created_at);`
	_, err = apartmentRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("apartmentRepo.CreateTables", apartmentRepo.Host+":"+apartmentRepo.Port, err.Error())
	}
	return nil
}

func (apartmentRepo *ApartmentRepository) GetApartments(ctx context.Context, cityId *int64) ([]apartment.Apartment, error) {
	query := `SELECT apartment.id, apartment.title, apartment.url, apartment.price, apartment.address,
	apartment.rooms, apartment.floor, apartment.total_floors, apartment.area,
	apartment.pros, apartment.cons, apartment.image_url, apartment.is_hidden,
	apartment.city_id, apartment.created_at, city.id, city.name
	FROM apartment JOIN city ON apartment.city_id = city.id`
	params := []any{}
	if cityId != nil {
		query += ` WHERE apartment.city_id = $1`
		params = append(params, *cityId)
	}
	query += ` ORDER BY apartment.created_at DESC;`
	rows, err := apartmentRepo.Pool.Query(ctx, query, params...)
	if err != nil {
		return nil, customerror.NewError("apartmentRepo.GetApartments", apartmentRepo.Host+":"+apartmentRepo.Port, err.Error())
	}
	apartments := []apartment.Apartment{}
	for rows.Next() {
		var apartment apartment.Apartment
		var cityRef city.Ref
		err := rows.Scan(
			&apartment.Id,
			&apartment.Title,
			&apartment.Url,
			&apartment.Price,
			&apartment.Address,
			&apartment.Rooms,
			&apartment.Floor,
			&apartment.TotalFloors,
			&apartment.Area,
			&apartment.Pros,
			&apartment.Cons,
			&apartment.ImageUrl,
			&apartment.IsHidden,
			&apartment.CityId,
			&apartment.CreatedAt,
			&cityRef.Id,
			&cityRef.Name,
		)
		if err != nil {
			return nil, customerror.NewError("apartmentRepo.GetApartments", apartmentRepo.Host+":"+apartmentRepo.Port, err.Error())
		}
		apartment.City = &cityRef
		apartment.Ratings = []rating.Rating{}
		apartments = append(apartments, apartment)
	}
	if err := apartmentRepo.attachRatings(ctx, apartments); err != nil {
		return nil, err
	}
	return apartments, nil
}

func (apartmentRepo *ApartmentRepository) attachRatings(ctx context.Context, apartments []apartment.Apartment) error {
	if len(apartments) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(apartments))
	byId := map[int64]*apartment.Apartment{}
	for i := range apartments {
		ids = append(ids, apartments[i].Id)
		byId[apartments[i].Id] = &apartments[i]
	}
	query := `SELECT id, apartment_id, user_token, rating, created_at, updated_at
	FROM rating WHERE apartment_id = ANY($1) ORDER BY created_at DESC;`
	rows, err := apartmentRepo.Pool.Query(ctx, query, ids)
	if err != nil {
		return customerror.NewError("apartmentRepo.attachRatings", apartmentRepo.Host+":"+apartmentRepo.Port, err.Error())
	}
	for rows.Next() {
		var r rating.Rating
		err := rows.Scan(&r.Id, &r.ApartmentId, &r.UserToken, &r.Rating, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return customerror.NewError("apartmentRepo.attachRatings", apartmentRepo.Host+":"+apartmentRepo.Port, err.Error())
		}
		if target, ok := byId[r.ApartmentId]; ok {
			target.Ratings = append(target.Ratings, r)
		}
	}
	return nil
}

func (apartmentRepo *ApartmentRepository) GetApartment(ctx context.Context, id int64) (*apartment.Apartment, error) {
	var apt apartment.Apartment
	var cityRef city.Ref
	query := `SELECT apartment.id, apartment.title, apartment.url, apartment.price, apartment.address,
	apartment.rooms, apartment.floor, apartment.total_floors, apartment.area,
	apartment.pros, apartment.cons, apartment.image_url, apartment.is_hidden,
	apartment.city_id, apartment.created_at, city.id, city.name
	FROM apartment JOIN city ON apartment.city_id = city.id WHERE apartment.id = $1`
	row := apartmentRepo.Pool.QueryRow(ctx, query, id)
	err := row.Scan(
		&apt.Id,
		&apt.Title,
		&apt.Url,
		&apt.Price,
		&apt.Address,
		&apt.Rooms,
		&apt.Floor,
		&apt.TotalFloors,
		&apt.Area,
		&apt.Pros,
		&apt.Cons,
		&apt.ImageUrl,
		&apt.IsHidden,
		&apt.CityId,
		&apt.CreatedAt,
		&cityRef.Id,
		&cityRef.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, customerror.NewError("apartmentRepo.GetApartment", apartmentRepo.Host+":"+apartmentRepo.Port, err.Error())
	}
	apt.City = &cityRef
	apt.Ratings = []rating.Rating{}
	single := []apartment.Apartment{apt}
	if err := apartmentRepo.attachRatings(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

func (apartmentRepo *ApartmentRepository) InsertApartment(ctx context.Context, apt *apartment.Apartment) (int64, error) {
	query := `INSERT INTO apartment (title, url, price, address, rooms, floor, total_floors, area, pros, cons, image_url, is_hidden, city_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id, created_at`
	err := apartmentRepo.Pool.QueryRow(ctx, query,
		apt.Title, apt.Url, apt.Price, apt.Address, apt.Rooms, apt.Floor, apt.TotalFloors, apt.Area,
		apt.Pros, apt.Cons, apt.ImageUrl, apt.IsHidden, apt.CityId,
	).Scan(&apt.Id, &apt.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// unknown city_id
			if pgErr.Code == "23503" {
				return 0, customerror.ErrInvalidInput
			}
		}
		return 0, customerror.NewError("apartmentRepo.InsertApartment", apartmentRepo.Host+":"+apartmentRepo.Port, err.Error())
	}
	apt.Ratings = []rating.Rating{}
	return apt.Id, nil
}

func (apartmentRepo *ApartmentRepository) UpdateApartment(ctx context.Context, apt *apartment.Apartment) error {
	query := `UPDATE apartment SET title = $1, url = $2, price = $3, address = $4, rooms = $5, floor = $6,
	total_floors = $7, area = $8, pros = $9, cons = $10, image_url = $11, is_hidden = $12 WHERE id = $13`
	command, err := apartmentRepo.Pool.Exec(ctx, query,
		apt.Title, apt.Url, apt.Price, apt.Address, apt.Rooms, apt.Floor, apt.TotalFloors, apt.Area,
		apt.Pros, apt.Cons, apt.ImageUrl, apt.IsHidden, apt.Id,
	)
	if err != nil {
		return customerror.NewError("apartmentRepo.UpdateApartment", apartmentRepo.Host+":"+apartmentRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (apartmentRepo *ApartmentRepository) DeleteApartment(ctx context.Context, id int64) error {
	// ratings go with the row, the FK is ON DELETE CASCADE
	query := `DELETE FROM apartment WHERE id = $1`
	command, err := apartmentRepo.Pool.Exec(ctx, query, id)
	if err != nil {
		return customerror.NewError("apartmentRepo.DeleteApartment", apartmentRepo.Host+":"+apartmentRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
