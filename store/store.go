package store

import (
	"errors"

	"github.com/google/uuid"

	"messagely/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyRead   = errors.New("message already marked as read")
	ErrDuplicateUser = errors.New("username or email already taken")
)

type UserStore interface {
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (models.User, error)
}

// UnreadCount is one recipient's number of unread messages, joined with
// the contact details the digest job needs.
type UnreadCount struct {
	Username  string
	FirstName string
	Email     string
	Count     int64
}

type MessageStore interface {
	// GetMessageByID returns the message with both user associations
	// populated, or ErrNotFound.
	GetMessageByID(id uuid.UUID) (models.Message, error)
	CreateMessage(fromUsername, toUsername, body string) (models.Message, error)
	// MarkMessageRead sets read_at exactly once. It returns ErrAlreadyRead
	// if read_at was already set and ErrNotFound if the message does not
	// exist. Two concurrent calls on the same message resolve to one
	// success and one ErrAlreadyRead.
	MarkMessageRead(id uuid.UUID) (models.Message, error)
	UnreadCounts() ([]UnreadCount, error)
}
