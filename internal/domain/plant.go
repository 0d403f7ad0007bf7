package domain

import (
	"time"

	"github.com/google/uuid"
)

// Plant represents a tracked plant. Reminders reference it by ID; there is
// no back-pointer from the plant to its reminders.
type Plant struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	Name             string     `json:"name" db:"name"`
	Species          string     `json:"species" db:"species"`
	Location         *string    `json:"location,omitempty" db:"location"`
	Edible           bool       `json:"edible" db:"edible"`
	LastInspectionAt *time.Time `json:"last_inspection_at,omitempty" db:"last_inspection_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}
