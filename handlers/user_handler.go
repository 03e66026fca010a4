package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"messagely/store"
)

type UserHandler struct {
	users store.UserStore
}

func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// GetUser returns the caller's own account. The route is guarded by
// CorrectUserRequired, so :username is always the authenticated caller.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.GetUserByUsername(c.Params("username"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	return c.JSON(fiber.Map{"user": UserResponse{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}})
}
