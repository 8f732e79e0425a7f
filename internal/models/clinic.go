package models

import "time"

type Clinic struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:50" json:"timezone"`

	// Scheduling configuration. These feed the booking policy and the
	// slot generator; they are per-clinic settings, not code constants.
	OpenTime        string `gorm:"size:5;default:'08:00'" json:"open_time"`
	CloseTime       string `gorm:"size:5;default:'20:00'" json:"close_time"`
	SlotIntervalMin int    `gorm:"default:30" json:"slot_interval_min"`
	HorizonMonths   int    `gorm:"default:3" json:"horizon_months"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
