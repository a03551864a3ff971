package city

import "time"

type City struct {
	Id              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
	ApartmentsCount int64     `json:"apartmentsCount"`
}

// Ref is the trimmed form nested inside an apartment.
type Ref struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}
