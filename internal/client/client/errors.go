package client

import "errors"

var (
	ErrUnavailable    = errors.New("backend unavailable")
	ErrUnknownBackend = errors.New("unknown backend")
)
