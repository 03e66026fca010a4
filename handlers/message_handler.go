package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"messagely/middleware"
	"messagely/models"
	"messagely/store"
)

type MessageHandler struct {
	messages store.MessageStore
	users    store.UserStore
}

func NewMessageHandler(messages store.MessageStore, users store.UserStore) *MessageHandler {
	return &MessageHandler{messages: messages, users: users}
}

type MessageDetailResponse struct {
	ID       uuid.UUID         `json:"id"`
	Body     string            `json:"body"`
	SentAt   time.Time         `json:"sent_at"`
	ReadAt   *time.Time        `json:"read_at"`
	FromUser models.PublicUser `json:"from_user"`
	ToUser   models.PublicUser `json:"to_user"`
}

type MessageCreatedResponse struct {
	ID           uuid.UUID `json:"id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	Body         string    `json:"body"`
	SentAt       time.Time `json:"sent_at"`
}

// GetMessage returns the full detail of a single message. Only the sender
// or the recipient may view it.
func (h *MessageHandler) GetMessage(c *fiber.Ctx) error {
	username := middleware.CurrentUsername(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	}

	msg, err := h.messages.GetMessageByID(id)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch message"})
	}

	if msg.FromUsername != username && msg.ToUsername != username {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized"})
	}

	return c.JSON(fiber.Map{"message": MessageDetailResponse{
		ID:       msg.ID,
		Body:     msg.Body,
		SentAt:   msg.SentAt,
		ReadAt:   msg.ReadAt,
		FromUser: msg.FromUser.Public(),
		ToUser:   msg.ToUser.Public(),
	}})
}

type CreateMessageRequest struct {
	FromUsername string `json:"from_username" validate:"required"`
	ToUsername   string `json:"to_username" validate:"required"`
	Body         string `json:"body" validate:"required"`
}

// CreateMessage posts a new message. The claimed sender must be the
// authenticated caller; nobody sends mail in someone else's name.
func (h *MessageHandler) CreateMessage(c *fiber.Ctx) error {
	username := middleware.CurrentUsername(c)

	var req CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.FromUsername != username {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if _, err := h.users.GetUserByUsername(req.ToUsername); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recipient not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve recipient"})
	}

	msg, err := h.messages.CreateMessage(req.FromUsername, req.ToUsername, req.Body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create message"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": MessageCreatedResponse{
		ID:           msg.ID,
		FromUsername: msg.FromUsername,
		ToUsername:   msg.ToUsername,
		Body:         msg.Body,
		SentAt:       msg.SentAt,
	}})
}

// MarkMessageRead flips read_at on a message. Only the recipient may do
// this; the sender can read the message but never mark it. A message that
// is already read yields 409, read_at is written exactly once.
func (h *MessageHandler) MarkMessageRead(c *fiber.Ctx) error {
	username := middleware.CurrentUsername(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	}

	msg, err := h.messages.GetMessageByID(id)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch message"})
	}

	if msg.ToUsername != username {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized"})
	}

	updated, err := h.messages.MarkMessageRead(id)
	if errors.Is(err, store.ErrAlreadyRead) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Message already marked as read"})
	}
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark message as read"})
	}

	return c.JSON(fiber.Map{"message": fiber.Map{
		"id":      updated.ID,
		"read_at": updated.ReadAt,
	}})
}
