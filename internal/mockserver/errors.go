package mockserver

import "errors"

var (
	errEmailTaken = errors.New("email already registered")
)
