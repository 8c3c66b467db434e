package models

// Service is a studio offering that bookings refer to
type Service struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Price    float64 `json:"price" db:"price"`
	Duration int64   `json:"duration" db:"duration"` // minutes
}
