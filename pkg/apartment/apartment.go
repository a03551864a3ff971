package apartment

import (
	"time"

	"github.com/Zlobinnn/home-viewer/pkg/city"
	"github.com/Zlobinnn/home-viewer/pkg/rating"
)

type Apartment struct {
	Id          int64           `json:"id"`
	Title       string          `json:"title"`
	Url         string          `json:"url"`
	Price       *float64        `json:"price"`
	Address     string          `json:"address"`
	Rooms       *int64          `json:"rooms"`
	Floor       *int64          `json:"floor"`
	TotalFloors *int64          `json:"totalFloors"`
	Area        *float64        `json:"area"`
	Pros        []string        `json:"pros"`
	Cons        []string        `json:"cons"`
	ImageUrl    *string         `json:"imageUrl"`
	IsHidden    bool            `json:"isHidden"`
	CityId      int64           `json:"cityId"`
	City        *city.Ref       `json:"city,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	Ratings     []rating.Rating `json:"ratings"`
}
