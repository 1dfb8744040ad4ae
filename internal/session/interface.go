package session

// TokenKey is the fixed key the credential is persisted under.
const TokenKey = "session_token"

// Store persists the single active session credential.
type Store interface {
	Get() (string, bool)
	Set(token string) error
	Clear() error

	Init() error
	Close() error
}
