package rating

import "time"

type Rating struct {
	Id          int64     `json:"id"`
	ApartmentId int64     `json:"apartmentId"`
	UserToken   string    `json:"userToken"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Average returns the arithmetic mean of the rating values.
// The second return is false when there are no ratings at all,
// so callers can tell "no rating yet" apart from an average of zero.
func Average(ratings []Rating) (float64, bool) {
	if len(ratings) == 0 {
		return 0, false
	}
	var sum float64
	for _, r := range ratings {
		sum += r.Rating
	}
	return sum / float64(len(ratings)), true
}
