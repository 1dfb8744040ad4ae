package api

import (
	"context"
	"encoding/json"

	"telekom-gateway/internal/gateway"
	"telekom-gateway/internal/model"
)

type Feedback struct {
	d Doer
}

func NewFeedback(d Doer) *Feedback {
	return &Feedback{d: d}
}

func (f *Feedback) Submit(ctx context.Context, fb model.Feedback) (json.RawMessage, error) {
	return f.d.Do(ctx, gateway.Post(prefix+"/feedback", fb))
}

// Stats returns the per-user feedback statistics.
func (f *Feedback) Stats(ctx context.Context, userID string) (json.RawMessage, error) {
	return f.d.Do(ctx, gateway.Get(gateway.Path(prefix+"/feedback/stats", userID)))
}

func (f *Feedback) Patterns(ctx context.Context) (json.RawMessage, error) {
	return f.d.Do(ctx, gateway.Get(prefix+"/feedback/patterns"))
}

func (f *Feedback) Improvements(ctx context.Context) (json.RawMessage, error) {
	return f.d.Do(ctx, gateway.Get(prefix+"/feedback/improvements"))
}
