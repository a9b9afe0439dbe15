package entities

import "time"

// FerrySchedule is one sailing between two islands, joined with the
// operating ferry's name.
type FerrySchedule struct {
	ID            int64     `json:"id" db:"id"`
	FerryID       int64     `json:"ferry_id" db:"ferry_id"`
	OriginID      int64     `json:"origin_id" db:"origin_id"`
	DestinationID int64     `json:"destination_id" db:"destination_id"`
	DepartureTime time.Time `json:"departure_time" db:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time" db:"arrival_time"`
	Price         int64     `json:"price" db:"price"`
	Capacity      int       `json:"capacity" db:"capacity"`
	FerryName     string    `json:"ferry_name" db:"ferry_name"`
}
