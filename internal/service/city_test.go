package service

import (
	"context"
	"errors"
	"testing"

	modelsCity "github.com/Zlobinnn/home-viewer/pkg/city"
	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCityRepo struct {
	cities         map[int64]modelsCity.City
	withApartments map[int64]bool
	nextId         int64
}

func newMockCityRepo() *mockCityRepo {
	return &mockCityRepo{
		cities:         map[int64]modelsCity.City{},
		withApartments: map[int64]bool{},
	}
}

func (m *mockCityRepo) CreateTables(_ context.Context) error { return nil }

func (m *mockCityRepo) GetCities(_ context.Context) ([]modelsCity.City, error) {
	cities := []modelsCity.City{}
	for _, c := range m.cities {
		cities = append(cities, c)
	}
	return cities, nil
}

func (m *mockCityRepo) InsertCity(_ context.Context, c *modelsCity.City) (int64, error) {
	m.nextId++
	c.Id = m.nextId
	m.cities[c.Id] = *c
	return c.Id, nil
}

func (m *mockCityRepo) DeleteCity(_ context.Context, id int64) error {
	if _, ok := m.cities[id]; !ok {
		return pgx.ErrNoRows
	}
	if m.withApartments[id] {
		return customerror.ErrConflict
	}
	delete(m.cities, id)
	return nil
}

func TestInsertCityRequiresName(t *testing.T) {
	svc := NewCityService(newMockCityRepo(), "localhost", "8080")
	_, err := svc.InsertCity(&modelsCity.City{})
	assert.True(t, errors.Is(err, customerror.ErrInvalidInput))
}

func TestDeleteCityWithApartmentsRejected(t *testing.T) {
	repo := newMockCityRepo()
	svc := NewCityService(repo, "localhost", "8080")

	id, err := svc.InsertCity(&modelsCity.City{Name: "Kazan"})
	require.NoError(t, err)
	repo.withApartments[id] = true

	err = svc.DeleteCity(id)
	assert.True(t, errors.Is(err, customerror.ErrConflict))

	// still there
	cities, err := svc.GetCities()
	require.NoError(t, err)
	assert.Len(t, cities, 1)
}

func TestDeleteCityUnknown(t *testing.T) {
	svc := NewCityService(newMockCityRepo(), "localhost", "8080")
	err := svc.DeleteCity(42)
	assert.Equal(t, pgx.ErrNoRows, err)
}

func TestDeleteCityWithoutApartments(t *testing.T) {
	repo := newMockCityRepo()
	svc := NewCityService(repo, "localhost", "8080")

	id, err := svc.InsertCity(&modelsCity.City{Name: "Sochi"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCity(id))
	cities, err := svc.GetCities()
	require.NoError(t, err)
	assert.Len(t, cities, 0)
}
