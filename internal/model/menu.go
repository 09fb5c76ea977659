package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuStatus represents the publication state of a menu.
type MenuStatus string

const (
	MenuStatusDraft     MenuStatus = "draft"
	MenuStatusPublished MenuStatus = "published"
)

// DateLayout is the calendar date format used for menu dates.
const DateLayout = "2006-01-02"

// Menu is the set of items offered for one meal type on one date.
type Menu struct {
	ID             string     `json:"id" bson:"id" gorm:"type:varchar(64);primaryKey"`
	Date           string     `json:"date" bson:"date" gorm:"type:varchar(10);not null;index:idx_menu_date_status"`
	MealType       MealType   `json:"meal_type" bson:"meal_type" gorm:"type:varchar(20);not null"`
	ItemIDs        []string   `json:"item_ids" bson:"item_ids" gorm:"type:text;serializer:json"`
	Status         MenuStatus `json:"status" bson:"status" gorm:"type:varchar(20);not null;index:idx_menu_date_status"`
	SelectionStart *time.Time `json:"selection_start" bson:"selection_start,omitempty"`
	SelectionEnd   *time.Time `json:"selection_end" bson:"selection_end,omitempty"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
}

// BeforeCreate sets the ID before creating the record.
func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
