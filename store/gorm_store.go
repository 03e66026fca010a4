package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"messagely/models"
)

// GormStore implements UserStore and MessageStore on a gorm connection.
// Postgres in production, sqlite in tests.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(user *models.User) error {
	err := s.db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUser
	}
	return err
}

func (s *GormStore) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *GormStore) GetMessageByID(id uuid.UUID) (models.Message, error) {
	var msg models.Message
	err := s.db.
		Preload("FromUser").
		Preload("ToUser").
		First(&msg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Message{}, ErrNotFound
	}
	return msg, err
}

func (s *GormStore) CreateMessage(fromUsername, toUsername, body string) (models.Message, error) {
	msg := models.Message{
		FromUsername: fromUsername,
		ToUsername:   toUsername,
		Body:         body,
		SentAt:       time.Now().UTC(),
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

func (s *GormStore) MarkMessageRead(id uuid.UUID) (models.Message, error) {
	now := time.Now().UTC()

	// Conditional update: only one writer can flip read_at from NULL.
	res := s.db.Model(&models.Message{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", now)
	if res.Error != nil {
		return models.Message{}, res.Error
	}

	var msg models.Message
	if err := s.db.First(&msg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Message{}, ErrNotFound
		}
		return models.Message{}, err
	}

	if res.RowsAffected == 0 {
		return msg, ErrAlreadyRead
	}
	return msg, nil
}

func (s *GormStore) UnreadCounts() ([]UnreadCount, error) {
	var counts []UnreadCount
	err := s.db.Model(&models.Message{}).
		Select("messages.to_username AS username, users.first_name AS first_name, users.email AS email, COUNT(*) AS count").
		Joins("JOIN users ON users.username = messages.to_username").
		Where("messages.read_at IS NULL").
		Group("messages.to_username, users.first_name, users.email").
		Scan(&counts).Error
	return counts, err
}
