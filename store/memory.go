package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"messagely/models"
)

// MemoryStore is an in-memory UserStore/MessageStore used by handler tests.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	messages map[uuid.UUID]models.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]models.User),
		messages: make(map[uuid.UUID]models.Message),
	}
}

func (s *MemoryStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return ErrDuplicateUser
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateUser
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	s.users[user.Username] = *user
	return nil
}

func (s *MemoryStore) GetUserByUsername(username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) GetMessageByID(id uuid.UUID) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[id]
	if !ok {
		return models.Message{}, ErrNotFound
	}
	msg.FromUser = s.users[msg.FromUsername]
	msg.ToUser = s.users[msg.ToUsername]
	return msg, nil
}

func (s *MemoryStore) CreateMessage(fromUsername, toUsername, body string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := models.Message{
		ID:           uuid.New(),
		FromUsername: fromUsername,
		ToUsername:   toUsername,
		Body:         body,
		SentAt:       time.Now().UTC(),
	}
	s.messages[msg.ID] = msg
	return msg, nil
}

func (s *MemoryStore) MarkMessageRead(id uuid.UUID) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[id]
	if !ok {
		return models.Message{}, ErrNotFound
	}
	if msg.ReadAt != nil {
		return msg, ErrAlreadyRead
	}
	now := time.Now().UTC()
	msg.ReadAt = &now
	s.messages[id] = msg
	return msg, nil
}

func (s *MemoryStore) UnreadCounts() ([]UnreadCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byUser := make(map[string]int64)
	for _, msg := range s.messages {
		if msg.ReadAt == nil {
			byUser[msg.ToUsername]++
		}
	}
	counts := make([]UnreadCount, 0, len(byUser))
	for username, n := range byUser {
		user := s.users[username]
		counts = append(counts, UnreadCount{
			Username:  username,
			FirstName: user.FirstName,
			Email:     user.Email,
			Count:     n,
		})
	}
	return counts, nil
}
