package session

import (
	"fmt"

	"telekom-gateway/internal/config"
)

// Context is the session handle a gateway is built with. It replaces ambient
// storage lookups with an explicit dependency.
type Context struct {
	store Store
}

func NewContext(store Store) *Context {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Context{store: store}
}

// NewContextFromConfig builds and initializes the store selected by cfg.
func NewContextFromConfig(cfg config.SessionConfig) (*Context, error) {
	var store Store
	switch cfg.Type {
	case "", "memory":
		store = NewMemoryStore()
	case "disk":
		store = NewDiskStore(cfg.DataDir)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStore, cfg.Type)
	}

	if err := store.Init(); err != nil {
		return nil, err
	}
	return NewContext(store), nil
}

// Credential returns the active token, if any.
func (c *Context) Credential() (string, bool) {
	return c.store.Get()
}

func (c *Context) SetCredential(token string) error {
	return c.store.Set(token)
}

func (c *Context) ClearCredential() error {
	return c.store.Clear()
}

func (c *Context) Close() error {
	return c.store.Close()
}
