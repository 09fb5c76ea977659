package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Urgency ranks how soon a ticket needs attention.
type Urgency string

const (
	UrgencyBasic    Urgency = "basic"
	UrgencyMedium   Urgency = "medium"
	UrgencyCritical Urgency = "critical"
)

// TicketStatus represents the triage state of a ticket.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether s is one of the known ticket statuses.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket is an issue report filed by a user.
type Ticket struct {
	ID          string       `json:"id" bson:"id" gorm:"type:varchar(64);primaryKey"`
	UserID      string       `json:"user_id" bson:"user_id" gorm:"type:varchar(64);not null;index"`
	Category    string       `json:"category" bson:"category" gorm:"size:100;not null"`
	SubCategory *string      `json:"sub_category" bson:"sub_category,omitempty" gorm:"size:100"`
	Urgency     Urgency      `json:"urgency" bson:"urgency" gorm:"type:varchar(20);not null"`
	Description string       `json:"description" bson:"description" gorm:"type:text;not null"`
	Photos      []string     `json:"photos" bson:"photos" gorm:"type:text;serializer:json"`
	Status      TicketStatus `json:"status" bson:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
}

// BeforeCreate sets the ID before creating the record.
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
