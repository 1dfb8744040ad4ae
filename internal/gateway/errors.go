package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Kind is the closed set of failure classes a caller can observe.
type Kind string

const (
	KindNetwork      Kind = "network-unreachable"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not-found"
	KindServer       Kind = "server-error"
	KindOther        Kind = "other"
)

const (
	MsgNetwork      = "cannot reach server, check connectivity"
	MsgUnauthorized = "session expired, please log in again"
	MsgForbidden    = "not authorized for this operation"
	MsgNotFound     = "requested resource not found"
	MsgServer       = "server error, try again later"
	MsgFallback     = "an error occurred"
)

// Sentinels for errors.Is matching on the kind alone.
var (
	ErrNetwork      = errors.New(string(KindNetwork))
	ErrUnauthorized = errors.New(string(KindUnauthorized))
	ErrForbidden    = errors.New(string(KindForbidden))
	ErrNotFound     = errors.New(string(KindNotFound))
	ErrServer       = errors.New(string(KindServer))
	ErrOther        = errors.New(string(KindOther))
)

var kindSentinels = map[Kind]error{
	KindNetwork:      ErrNetwork,
	KindUnauthorized: ErrUnauthorized,
	KindForbidden:    ErrForbidden,
	KindNotFound:     ErrNotFound,
	KindServer:       ErrServer,
	KindOther:        ErrOther,
}

// Error is the normalized failure every operation returns. The transport
// error that caused it is kept for diagnostics only and is not unwrappable.
type Error struct {
	Kind    Kind
	Message string
	// Status is the HTTP status, zero when no response arrived.
	Status int
	// Detail is the backend-supplied detail message, if any.
	Detail string

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// KindOf reports the kind of a gateway error, or "" for foreign errors.
func KindOf(err error) Kind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return ""
}

func networkError(cause error) *Error {
	return &Error{Kind: KindNetwork, Message: MsgNetwork, cause: cause}
}

// Normalize maps any failure to an *Error. An *Error is returned as is;
// anything else reached this layer without a response and is treated as a
// network failure.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr
	}
	return networkError(err)
}

// classifyStatus applies the status table to a non-2xx response.
func classifyStatus(status int, body []byte) *Error {
	e := &Error{Status: status, Detail: extractDetail(body)}
	switch status {
	case http.StatusUnauthorized:
		e.Kind, e.Message = KindUnauthorized, MsgUnauthorized
	case http.StatusForbidden:
		e.Kind, e.Message = KindForbidden, MsgForbidden
	case http.StatusNotFound:
		e.Kind, e.Message = KindNotFound, MsgNotFound
	case http.StatusInternalServerError:
		e.Kind, e.Message = KindServer, MsgServer
	default:
		e.Kind, e.Message = KindOther, MsgFallback
		if e.Detail != "" {
			e.Message = e.Detail
		}
	}
	return e
}

// extractDetail reads the backend "detail" field: a plain string, or a
// validation list whose first entry carries "msg".
func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil && len(items) > 0 {
		return items[0].Msg
	}
	return ""
}
