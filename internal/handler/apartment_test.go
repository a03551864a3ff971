package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Zlobinnn/home-viewer/internal/repository"
	"github.com/Zlobinnn/home-viewer/internal/service"
	modelsApartment "github.com/Zlobinnn/home-viewer/pkg/apartment"
	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/Zlobinnn/home-viewer/pkg/rating"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockApartmentRepo keeps rows in insertion order and hands them back newest
// first, the same ordering the SQL query promises.
type mockApartmentRepo struct {
	knownCities map[int64]bool
	rows        []modelsApartment.Apartment
	nextId      int64
}

func newMockApartmentRepo(cityIds ...int64) *mockApartmentRepo {
	knownCities := map[int64]bool{}
	for _, id := range cityIds {
		knownCities[id] = true
	}
	return &mockApartmentRepo{knownCities: knownCities}
}

func (m *mockApartmentRepo) CreateTables(_ context.Context) error { return nil }

func (m *mockApartmentRepo) GetApartments(_ context.Context, cityId *int64) ([]modelsApartment.Apartment, error) {
	apartments := []modelsApartment.Apartment{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if cityId != nil && m.rows[i].CityId != *cityId {
			continue
		}
		apartments = append(apartments, m.rows[i])
	}
	return apartments, nil
}

func (m *mockApartmentRepo) GetApartment(_ context.Context, id int64) (*modelsApartment.Apartment, error) {
	for i := range m.rows {
		if m.rows[i].Id == id {
			found := m.rows[i]
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockApartmentRepo) InsertApartment(_ context.Context, apt *modelsApartment.Apartment) (int64, error) {
	if !m.knownCities[apt.CityId] {
		return 0, customerror.ErrInvalidInput
	}
	m.nextId++
	apt.Id = m.nextId
	apt.CreatedAt = time.Now()
	if apt.Ratings == nil {
		apt.Ratings = []rating.Rating{}
	}
	m.rows = append(m.rows, *apt)
	return apt.Id, nil
}

func (m *mockApartmentRepo) UpdateApartment(_ context.Context, apt *modelsApartment.Apartment) error {
	for i := range m.rows {
		if m.rows[i].Id == apt.Id {
			m.rows[i] = *apt
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockApartmentRepo) DeleteApartment(_ context.Context, id int64) error {
	for i := range m.rows {
		if m.rows[i].Id == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newApartmentRouter(repo repository.ApartmentRepositoryI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apartmentService := service.NewApartmentService(repo, "localhost", "8080")
	apartmentHandler := NewApartmentHandler(apartmentService, "localhost", "8080")
	router := gin.New()
	api := router.Group("/api")
	apartmentHandler.RegisterRoutes(api)
	return router
}

type apartmentEnvelope struct {
	Status int `json:"status"`
	Body   struct {
		Apartment  modelsApartment.Apartment   `json:"apartment"`
		Apartments []modelsApartment.Apartment `json:"apartments"`
	} `json:"body"`
	Error *string `json:"error"`
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, apartmentEnvelope) {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	var envelope apartmentEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return recorder, envelope
}

func TestInsertApartmentRequiresCityId(t *testing.T) {
	router := newApartmentRouter(newMockApartmentRepo(1))
	recorder, envelope := doRequest(t, router, http.MethodPost, "/api/apartments", `{"title":"studio"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, http.StatusBadRequest, envelope.Status)
}

func TestInsertApartmentCoercesNumericStrings(t *testing.T) {
	router := newApartmentRouter(newMockApartmentRepo(2))
	body := `{"title":"two rooms","cityId":"2","price":"120000.5","rooms":"2","floor":"3","totalFloors":"9","area":"54.2","pros":["bright"],"cons":[]}`
	recorder, envelope := doRequest(t, router, http.MethodPost, "/api/apartments", body)
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := envelope.Body.Apartment
	assert.Equal(t, int64(2), created.CityId)
	require.NotNil(t, created.Price)
	assert.Equal(t, 120000.5, *created.Price)
	require.NotNil(t, created.Rooms)
	assert.Equal(t, int64(2), *created.Rooms)
	require.NotNil(t, created.Area)
	assert.Equal(t, 54.2, *created.Area)
	assert.Equal(t, []string{"bright"}, created.Pros)
}

func TestInsertApartmentUnknownCity(t *testing.T) {
	router := newApartmentRouter(newMockApartmentRepo(1))
	recorder, _ := doRequest(t, router, http.MethodPost, "/api/apartments", `{"title":"x","cityId":99}`)
	// FK violation surfaces as a client error, not a 500
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetApartmentsFiltersByCity(t *testing.T) {
	repo := newMockApartmentRepo(1, 2)
	router := newApartmentRouter(repo)
	doRequest(t, router, http.MethodPost, "/api/apartments", `{"title":"a","cityId":1}`)
	doRequest(t, router, http.MethodPost, "/api/apartments", `{"title":"b","cityId":2}`)
	doRequest(t, router, http.MethodPost, "/api/apartments", `{"title":"c","cityId":1}`)

	recorder, envelope := doRequest(t, router, http.MethodGet, "/api/apartments?cityId=1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, envelope.Body.Apartments, 2)
	for _, apt := range envelope.Body.Apartments {
		assert.Equal(t, int64(1), apt.CityId)
	}
	// newest first
	assert.Equal(t, "c", envelope.Body.Apartments[0].Title)

	recorder, envelope = doRequest(t, router, http.MethodGet, "/api/apartments", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, envelope.Body.Apartments, 3)

	recorder, _ = doRequest(t, router, http.MethodGet, "/api/apartments?cityId=abc", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateApartmentPartial(t *testing.T) {
	router := newApartmentRouter(newMockApartmentRepo(1))
	_, created := doRequest(t, router, http.MethodPost, "/api/apartments", `{"title":"before","cityId":1,"price":100}`)

	recorder, envelope := doRequest(t, router, http.MethodPut, "/api/apartments/1", `{"price":"999"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	updated := envelope.Body.Apartment
	assert.Equal(t, created.Body.Apartment.Title, updated.Title)
	require.NotNil(t, updated.Price)
	assert.Equal(t, 999.0, *updated.Price)

	recorder, _ = doRequest(t, router, http.MethodPut, "/api/apartments/1", `{"price":true}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder, _ = doRequest(t, router, http.MethodPut, "/api/apartments/77", `{"price":1}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUpdateApartmentHideFlag(t *testing.T) {
	router := newApartmentRouter(newMockApartmentRepo(1))
	doRequest(t, router, http.MethodPost, "/api/apartments", `{"title":"x","cityId":1}`)

	recorder, envelope := doRequest(t, router, http.MethodPut, "/api/apartments/1", `{"isHidden":true}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, envelope.Body.Apartment.IsHidden)
}

func TestDeleteApartment(t *testing.T) {
	router := newApartmentRouter(newMockApartmentRepo(1))
	doRequest(t, router, http.MethodPost, "/api/apartments", `{"title":"x","cityId":1}`)

	recorder, _ := doRequest(t, router, http.MethodDelete, "/api/apartments/1", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = doRequest(t, router, http.MethodGet, "/api/apartments/1", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder, _ = doRequest(t, router, http.MethodDelete, "/api/apartments/1", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
