package session

import "errors"

var (
	ErrEmptyToken    = errors.New("empty session token")
	ErrStoreInit     = errors.New("session store initialization failed")
	ErrFileOperation = errors.New("session file operation failed")
	ErrUnknownStore  = errors.New("unknown session store type")
)
