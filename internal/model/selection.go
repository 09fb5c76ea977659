package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSelection is a student's chosen subset of a menu's items.
// At most one exists per (user, menu).
type UserSelection struct {
	ID              string    `json:"id" bson:"id" gorm:"type:varchar(64);primaryKey"`
	UserID          string    `json:"user_id" bson:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_selection_user_menu"`
	MenuID          string    `json:"menu_id" bson:"menu_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_selection_user_menu;index"`
	SelectedItemIDs []string  `json:"selected_item_ids" bson:"selected_item_ids" gorm:"type:text;serializer:json"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

// BeforeCreate sets the ID before creating the record.
func (s *UserSelection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
