package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is the dietary category of a menu item.
type Category string

const (
	CategoryVeg    Category = "veg"
	CategoryNonVeg Category = "non-veg"
)

// MealType identifies the meal a menu or item belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// MenuItem is a dish in the catalog.
type MenuItem struct {
	ID          string    `json:"id" bson:"id" gorm:"type:varchar(64);primaryKey"`
	Name        string    `json:"name" bson:"name" gorm:"size:255;not null"`
	Category    Category  `json:"category" bson:"category" gorm:"type:varchar(20);not null"`
	MealType    MealType  `json:"meal_type" bson:"meal_type" gorm:"type:varchar(20);not null;index"`
	Description *string   `json:"description" bson:"description,omitempty" gorm:"type:text"`
	ImageURL    *string   `json:"image_url" bson:"image_url,omitempty" gorm:"size:1024"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// BeforeCreate sets the ID before creating the record.
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
