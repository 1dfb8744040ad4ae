package api

import (
	"context"
	"encoding/json"

	"telekom-gateway/internal/gateway"
	"telekom-gateway/internal/model"
)

// User covers account operations. Storing the token returned by Login is
// the caller's job, through the gateway's session context.
type User struct {
	d Doer
}

func NewUser(d Doer) *User {
	return &User{d: d}
}

func (u *User) Login(ctx context.Context, creds model.Credentials) (json.RawMessage, error) {
	return u.d.Do(ctx, gateway.Post(prefix+"/user/login", creds))
}

func (u *User) Register(ctx context.Context, user model.UserRegistration) (json.RawMessage, error) {
	return u.d.Do(ctx, gateway.Post(prefix+"/user/register", user))
}

func (u *User) Profile(ctx context.Context) (json.RawMessage, error) {
	return u.d.Do(ctx, gateway.Get(prefix+"/user/profile"))
}

func (u *User) Current(ctx context.Context) (json.RawMessage, error) {
	return u.d.Do(ctx, gateway.Get(prefix+"/user/current"))
}

func (u *User) ByID(ctx context.Context, userID string) (json.RawMessage, error) {
	return u.d.Do(ctx, gateway.Get(gateway.Path(prefix+"/user/by-id", userID)))
}

func (u *User) UpdateProfile(ctx context.Context, update model.UserUpdate) (json.RawMessage, error) {
	return u.d.Do(ctx, gateway.Put(prefix+"/user/current", update))
}

func (u *User) Logout(ctx context.Context) (json.RawMessage, error) {
	return u.d.Do(ctx, gateway.Post(prefix+"/user/logout", nil))
}

func (u *User) ActiveUsers(ctx context.Context) (json.RawMessage, error) {
	return u.d.Do(ctx, gateway.Get(prefix+"/user/all-active"))
}
