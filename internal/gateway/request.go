package gateway

import (
	"net/http"
	"net/url"
	"strings"
)

// Request describes one backend call. It is a value; the builder methods
// return modified copies.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// EmbedSession adds the credential as "session_token" in the JSON body.
	EmbedSession bool
}

func Get(path string) Request {
	return Request{Method: http.MethodGet, Path: path}
}

func Post(path string, body any) Request {
	return Request{Method: http.MethodPost, Path: path, Body: body}
}

func Put(path string, body any) Request {
	return Request{Method: http.MethodPut, Path: path, Body: body}
}

func (r Request) WithSession() Request {
	r.EmbedSession = true
	return r
}

func (r Request) WithQuery(key, value string) Request {
	q := url.Values{}
	for k, v := range r.Query {
		q[k] = append([]string(nil), v...)
	}
	q.Add(key, value)
	r.Query = q
	return r
}

// Path joins a route prefix with escaped path parameters.
func Path(prefix string, params ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(prefix, "/"))
	for _, p := range params {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}
