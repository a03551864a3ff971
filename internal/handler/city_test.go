package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Zlobinnn/home-viewer/internal/service"
	modelsCity "github.com/Zlobinnn/home-viewer/pkg/city"
	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/gin-gonic/gin"
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
		if m.withApartments[c.Id] {
			c.ApartmentsCount = 1
		}
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

func newCityRouter(repo *mockCityRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cityService := service.NewCityService(repo, "localhost", "8080")
	cityHandler := NewCityHandler(cityService, "localhost", "8080")
	router := gin.New()
	api := router.Group("/api")
	cityHandler.RegisterRoutes(api)
	return router
}

type cityEnvelope struct {
	Status int `json:"status"`
	Body   struct {
		City   modelsCity.City   `json:"city"`
		Cities []modelsCity.City `json:"cities"`
	} `json:"body"`
	Error *string `json:"error"`
}

func doCityRequest(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, cityEnvelope) {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	var envelope cityEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return recorder, envelope
}

func TestInsertCity(t *testing.T) {
	router := newCityRouter(newMockCityRepo())
	recorder, envelope := doCityRequest(t, router, http.MethodPost, "/api/cities", `{"name":"Kazan","description":"on the Volga"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "Kazan", envelope.Body.City.Name)
	require.NotNil(t, envelope.Body.City.Description)
	assert.Equal(t, "on the Volga", *envelope.Body.City.Description)
}

func TestInsertCityRequiresName(t *testing.T) {
	router := newCityRouter(newMockCityRepo())
	recorder, _ := doCityRequest(t, router, http.MethodPost, "/api/cities", `{"description":"nameless"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetCitiesWithCounts(t *testing.T) {
	repo := newMockCityRepo()
	router := newCityRouter(repo)
	doCityRequest(t, router, http.MethodPost, "/api/cities", `{"name":"Kazan"}`)
	repo.withApartments[1] = true

	recorder, envelope := doCityRequest(t, router, http.MethodGet, "/api/cities", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, envelope.Body.Cities, 1)
	assert.Equal(t, int64(1), envelope.Body.Cities[0].ApartmentsCount)
}

func TestDeleteCityWithApartmentsConflicts(t *testing.T) {
	repo := newMockCityRepo()
	router := newCityRouter(repo)
	doCityRequest(t, router, http.MethodPost, "/api/cities", `{"name":"Kazan"}`)
	repo.withApartments[1] = true

	recorder, _ := doCityRequest(t, router, http.MethodDelete, "/api/cities/1", "")
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestDeleteCity(t *testing.T) {
	repo := newMockCityRepo()
	router := newCityRouter(repo)
	doCityRequest(t, router, http.MethodPost, "/api/cities", `{"name":"Sochi"}`)

	recorder, _ := doCityRequest(t, router, http.MethodDelete, "/api/cities/1", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = doCityRequest(t, router, http.MethodDelete, "/api/cities/1", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
