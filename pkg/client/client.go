// Package client is the consumer side of the catalog API. It keeps a local
// mirror of the server's apartments and cities, refetched only on initial
// load; every mutation merges the server's response back into the mirror by
// primary key instead of refetching the whole list.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/Zlobinnn/home-viewer/pkg/apartment"
	"github.com/Zlobinnn/home-viewer/pkg/city"
	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/Zlobinnn/home-viewer/pkg/rating"
	"github.com/Zlobinnn/home-viewer/pkg/token"
)

type Client struct {
	baseUrl string
	http    *http.Client
	tokens  *token.Store

	mu         sync.Mutex
	apartments []apartment.Apartment
	cities     []city.City
}

func New(baseUrl string, tokens *token.Store) *Client {
	return &Client{
		baseUrl: baseUrl,
		http:    &http.Client{},
		tokens:  tokens,
	}
}

type envelope struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
	Error  *string         `json:"error"`
}

func (client *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return customerror.NewError("client.do", client.baseUrl, err.Error())
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	request, err := http.NewRequestWithContext(ctx, method, client.baseUrl+path, body)
	if err != nil {
		return customerror.NewError("client.do", client.baseUrl, err.Error())
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := client.http.Do(request)
	if err != nil {
		return customerror.NewError("client.do", client.baseUrl, err.Error())
	}
	defer response.Body.Close()
	var env envelope
	if err := json.NewDecoder(response.Body).Decode(&env); err != nil {
		return customerror.NewError("client.do", client.baseUrl, err.Error())
	}
	if response.StatusCode >= 400 {
		message := "request failed"
		if env.Error != nil {
			message = *env.Error
		}
		return customerror.NewError("client.do", client.baseUrl, fmt.Sprintf("%d: %s", response.StatusCode, message))
	}
	if out != nil {
		if err := json.Unmarshal(env.Body, out); err != nil {
			return customerror.NewError("client.do", client.baseUrl, err.Error())
		}
	}
	return nil
}

// LoadApartments refetches the apartment mirror, optionally scoped to a city.
func (client *Client) LoadApartments(ctx context.Context, cityId *int64) error {
	path := "/api/apartments"
	if cityId != nil {
		path = fmt.Sprintf("/api/apartments?cityId=%d", *cityId)
	}
	var body struct {
		Apartments []apartment.Apartment `json:"apartments"`
	}
	if err := client.do(ctx, http.MethodGet, path, nil, &body); err != nil {
		return err
	}
	client.mu.Lock()
	client.apartments = body.Apartments
	client.mu.Unlock()
	return nil
}

func (client *Client) LoadCities(ctx context.Context) error {
	var body struct {
		Cities []city.City `json:"cities"`
	}
	if err := client.do(ctx, http.MethodGet, "/api/cities", nil, &body); err != nil {
		return err
	}
	client.mu.Lock()
	client.cities = body.Cities
	client.mu.Unlock()
	return nil
}

func (client *Client) Apartments() []apartment.Apartment {
	client.mu.Lock()
	defer client.mu.Unlock()
	out := make([]apartment.Apartment, len(client.apartments))
	copy(out, client.apartments)
	return out
}

// Visible is the default browsing view: hidden listings filtered out.
func (client *Client) Visible() []apartment.Apartment {
	client.mu.Lock()
	defer client.mu.Unlock()
	out := []apartment.Apartment{}
	for _, apt := range client.apartments {
		if !apt.IsHidden {
			out = append(out, apt)
		}
	}
	return out
}

func (client *Client) Cities() []city.City {
	client.mu.Lock()
	defer client.mu.Unlock()
	out := make([]city.City, len(client.cities))
	copy(out, client.cities)
	return out
}

func (client *Client) AddApartment(ctx context.Context, apt apartment.Apartment) (*apartment.Apartment, error) {
	var body struct {
		Apartment apartment.Apartment `json:"apartment"`
	}
	if err := client.do(ctx, http.MethodPost, "/api/apartments", apt, &body); err != nil {
		return nil, err
	}
	client.mu.Lock()
	client.apartments = append([]apartment.Apartment{body.Apartment}, client.apartments...)
	client.mu.Unlock()
	return &body.Apartment, nil
}

// ApartmentPatch carries only the fields being changed; nil means "leave as is".
type ApartmentPatch struct {
	Title       *string   `json:"title,omitempty"`
	Url         *string   `json:"url,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Rooms       *int64    `json:"rooms,omitempty"`
	Floor       *int64    `json:"floor,omitempty"`
	TotalFloors *int64    `json:"totalFloors,omitempty"`
	Area        *float64  `json:"area,omitempty"`
	Pros        *[]string `json:"pros,omitempty"`
	Cons        *[]string `json:"cons,omitempty"`
	ImageUrl    *string   `json:"imageUrl,omitempty"`
	IsHidden    *bool     `json:"isHidden,omitempty"`
}

func (client *Client) UpdateApartment(ctx context.Context, id int64, patch ApartmentPatch) (*apartment.Apartment, error) {
	var body struct {
		Apartment apartment.Apartment `json:"apartment"`
	}
	path := fmt.Sprintf("/api/apartments/%d", id)
	if err := client.do(ctx, http.MethodPut, path, patch, &body); err != nil {
		return nil, err
	}
	client.mu.Lock()
	for i := range client.apartments {
		if client.apartments[i].Id == id {
			client.apartments[i] = body.Apartment
			break
		}
	}
	client.mu.Unlock()
	return &body.Apartment, nil
}

func (client *Client) DeleteApartment(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/apartments/%d", id)
	if err := client.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	client.mu.Lock()
	kept := client.apartments[:0]
	for _, apt := range client.apartments {
		if apt.Id != id {
			kept = append(kept, apt)
		}
	}
	client.apartments = kept
	client.mu.Unlock()
	return nil
}

func (client *Client) AddCity(ctx context.Context, name string, description *string) (*city.City, error) {
	payload := map[string]any{"name": name, "description": description}
	var body struct {
		City city.City `json:"city"`
	}
	if err := client.do(ctx, http.MethodPost, "/api/cities", payload, &body); err != nil {
		return nil, err
	}
	client.mu.Lock()
	client.cities = append(client.cities, body.City)
	client.mu.Unlock()
	return &body.City, nil
}

// Rate submits this client's rating for an apartment, clamped to the star
// widget's 1-5 range, and patches the stored row into the mirrored list.
func (client *Client) Rate(ctx context.Context, apartmentId int64, value float64) (*rating.Rating, error) {
	if value < 1 {
		value = 1
	}
	if value > 5 {
		value = 5
	}
	userToken, err := client.tokens.Get()
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"apartmentId": apartmentId,
		"rating":      value,
		"userToken":   userToken,
	}
	var body struct {
		Rating rating.Rating `json:"rating"`
	}
	if err := client.do(ctx, http.MethodPost, "/api/ratings", payload, &body); err != nil {
		return nil, err
	}
	client.mu.Lock()
	for i := range client.apartments {
		if client.apartments[i].Id != apartmentId {
			continue
		}
		replaced := false
		for j := range client.apartments[i].Ratings {
			if client.apartments[i].Ratings[j].UserToken == userToken {
				client.apartments[i].Ratings[j] = body.Rating
				replaced = true
				break
			}
		}
		if !replaced {
			client.apartments[i].Ratings = append(client.apartments[i].Ratings, body.Rating)
		}
		break
	}
	client.mu.Unlock()
	return &body.Rating, nil
}

// AverageFor returns the mirrored apartment's average rating; false when the
// apartment is unknown or has no ratings yet.
func (client *Client) AverageFor(apartmentId int64) (float64, bool) {
	client.mu.Lock()
	defer client.mu.Unlock()
	for _, apt := range client.apartments {
		if apt.Id == apartmentId {
			return rating.Average(apt.Ratings)
		}
	}
	return 0, false
}

// Logout clears the persisted identity token; nothing server-side to undo.
func (client *Client) Logout() error {
	return client.tokens.Clear()
}
