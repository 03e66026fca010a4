package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a one-to-one text message. From/to references and SentAt are
// immutable after creation; ReadAt is written once, by the recipient.
type Message struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	FromUsername string     `gorm:"size:50;not null;index" json:"from_username"`
	ToUsername   string     `gorm:"size:50;not null;index" json:"to_username"`
	Body         string     `gorm:"type:text;not null" json:"body"`
	SentAt       time.Time  `gorm:"not null" json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`

	FromUser User `gorm:"foreignKey:FromUsername;references:Username" json:"-"`
	ToUser   User `gorm:"foreignKey:ToUsername;references:Username" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
