package api

import (
	"context"
	"encoding/json"

	"telekom-gateway/internal/gateway"
	"telekom-gateway/internal/model"
)

type Chat struct {
	d Doer
}

func NewChat(d Doer) *Chat {
	return &Chat{d: d}
}

// SendMessage posts a chat turn. The session credential rides in the body as
// well as the header.
func (c *Chat) SendMessage(ctx context.Context, msg model.ChatMessage) (json.RawMessage, error) {
	return c.d.Do(ctx, gateway.Post(prefix+"/chat/", msg).WithSession())
}

func (c *Chat) SendMessageLegacy(ctx context.Context, msg model.ChatMessage) (json.RawMessage, error) {
	msg.AIModel = ""
	return c.d.Do(ctx, gateway.Post(prefix+"/chat/legacy", msg).WithSession())
}

func (c *Chat) ClearSession(ctx context.Context, sessionID string) (json.RawMessage, error) {
	return c.d.Do(ctx, gateway.Post(prefix+"/chat/session/clear", model.ClearSessionRequest{SessionID: sessionID}))
}

func (c *Chat) Health(ctx context.Context) (json.RawMessage, error) {
	return c.d.Do(ctx, gateway.Get(prefix+"/health"))
}

func (c *Chat) ChatHealth(ctx context.Context) (json.RawMessage, error) {
	return c.d.Do(ctx, gateway.Get(prefix+"/chat/health"))
}

func (c *Chat) SystemStatus(ctx context.Context) (json.RawMessage, error) {
	return c.d.Do(ctx, gateway.Get(prefix+"/chat/system/status"))
}

func (c *Chat) ModelInfo(ctx context.Context) (json.RawMessage, error) {
	return c.d.Do(ctx, gateway.Get(prefix+"/ai/model-info"))
}
