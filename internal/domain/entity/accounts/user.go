package accounts

import (
	"time"

	"github.com/google/uuid"
)

// User is a trading client resolved from the office's user directory. The
// UUID is the stable key every Redis key derivation hangs off.
type User struct {
	ID          int64     `json:"id"`
	UUID        uuid.UUID `json:"uuid"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	OfficeID    int64     `json:"office_id"`
}

// Schedule is one trading-hours window. A schedule with no end is
// currently open.
type Schedule struct {
	ID      int64      `json:"id"`
	Started time.Time  `json:"started"`
	Ended   *time.Time `json:"ended,omitempty"`
}
