package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the capability a user acts with.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// IsAdmin reports whether the role grants admin capabilities.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// User represents a student or an administrator.
type User struct {
	ID             string    `json:"id" bson:"id" gorm:"type:varchar(64);primaryKey"`
	Email          string    `json:"email" bson:"email" gorm:"uniqueIndex;size:255;not null"`
	Name           string    `json:"name" bson:"name" gorm:"size:255;not null"`
	Role           Role      `json:"role" bson:"role" gorm:"type:varchar(20);not null;default:'student'"`
	HostelID       *string   `json:"hostel_id" bson:"hostel_id,omitempty" gorm:"size:64"`
	RoomNumber     *string   `json:"room_number" bson:"room_number,omitempty" gorm:"size:64"`
	ProfilePicture *string   `json:"profile_picture" bson:"profile_picture,omitempty" gorm:"type:text"`
	PasswordHash   string    `json:"-" bson:"password_hash" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// BeforeCreate sets the ID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ProfileUpdate carries the user-editable profile fields. Nil or empty values
// are left untouched.
type ProfileUpdate struct {
	Name           *string
	RoomNumber     *string
	ProfilePicture *string
}

// Fields returns the column/field names and values that should be written.
func (p ProfileUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, 3)
	if p.Name != nil && *p.Name != "" {
		fields["name"] = *p.Name
	}
	if p.RoomNumber != nil && *p.RoomNumber != "" {
		fields["room_number"] = *p.RoomNumber
	}
	if p.ProfilePicture != nil && *p.ProfilePicture != "" {
		fields["profile_picture"] = *p.ProfilePicture
	}
	return fields
}
