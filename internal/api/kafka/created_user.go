package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"match-service/infra/messaging"

	"github.com/google/uuid"
)

// MessageTypeUserCreated is published by the auth service for every new account.
const MessageTypeUserCreated = "user_created"

type UserCreatedData struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type UserRepository interface {
	EnsureUser(ctx context.Context, userID uuid.UUID, displayName string) error
}

type CreatedUserHandler struct {
	repository UserRepository
}

func NewCreatedUserHandler(repository UserRepository) *CreatedUserHandler {
	return &CreatedUserHandler{
		repository: repository,
	}
}

func (h *CreatedUserHandler) Handle(ctx context.Context, msg *messaging.Message) error {
	var data UserCreatedData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		return fmt.Errorf("UserCreatedData payload is malformed for message ID %s: %w", msg.ID, err)
	}
	userID, err := uuid.Parse(data.UserID)
	if err != nil {
		return fmt.Errorf("UserCreatedData has invalid user id for message ID %s: %w", msg.ID, err)
	}
	return h.repository.EnsureUser(ctx, userID, data.Username)
}

type MessageHandler interface {
	Handle(ctx context.Context, msg *messaging.Message) error
}

// Router dispatches consumed messages by type. Unknown types are ignored.
func Router(handlers map[string]MessageHandler) messaging.Handler {
	return func(ctx context.Context, msg *messaging.Message) error {
		h, ok := handlers[msg.Type]
		if !ok {
			return nil
		}
		return h.Handle(ctx, msg)
	}
}
