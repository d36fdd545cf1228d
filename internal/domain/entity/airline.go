package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline represents airline reference data, including the online
// check-in metadata used to build deep links.
type Airline struct {
	ID          uint
	Code        string
	Name        string
	CheckInLink string
	CheckInTime int // hours before departure when online check-in opens
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}
