// Package api groups the backend operations by domain. Each operation builds
// one gateway.Request and returns the backend payload unchanged; failures are
// the gateway's normalized *gateway.Error.
package api

import (
	"context"
	"encoding/json"

	"telekom-gateway/internal/gateway"
)

const prefix = "/api/v1"

// Doer issues a single request through the gateway pipeline.
type Doer interface {
	Do(ctx context.Context, req gateway.Request) (json.RawMessage, error)
}

type Services struct {
	Chat     *Chat
	User     *User
	Telekom  *Telekom
	Feedback *Feedback
}

func New(d Doer) *Services {
	return &Services{
		Chat:     NewChat(d),
		User:     NewUser(d),
		Telekom:  NewTelekom(d),
		Feedback: NewFeedback(d),
	}
}
