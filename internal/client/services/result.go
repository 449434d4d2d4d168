package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/simkeeper/internal/common"
)

// Result is the outcome of a data access operation. Data is meaningful only
// when Success is true; Error carries a human-readable message otherwise.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`

	err error
}

// Err returns the failure as an error that matches common.ErrorNotFound,
// common.ErrorValidation or common.ErrorInternal via errors.Is, or nil on
// success.
func (r Result[T]) Err() error {
	return r.err
}

func ok[T any](v T) Result[T] {
	return Result[T]{Success: true, Data: v}
}

func fail[T any](err error) Result[T] {
	return Result[T]{Error: err.Error(), err: err}
}

// opError keeps a caller-facing message while matching a sentinel.
type opError struct {
	kind error
	msg  string
}

func (e *opError) Error() string { return e.msg }
func (e *opError) Unwrap() error { return e.kind }

func notFound(format string, args ...any) error {
	return &opError{kind: common.ErrorNotFound, msg: fmt.Sprintf(format, args...)}
}

// Generic messages for internal failures.
const (
	msgCreateSim       = "Failed to create sim"
	msgRetrieveSim     = "Failed to retrieve sim"
	msgRetrieveSims    = "Failed to retrieve sims"
	msgUpdateSim       = "Failed to update sim"
	msgDeleteSim       = "Failed to delete sim"
	msgCreateMetadata  = "Failed to create metadata"
	msgRetrieveMeta    = "Failed to retrieve metadata"
	msgUpdateMetadata  = "Failed to update metadata"
	msgDeleteMetadata  = "Failed to delete metadata"
	msgSearchMetadata  = "Failed to search metadata"
	msgMetadataStats   = "Failed to compute metadata stats"
	msgReconcileFailed = "Failed to reconcile store"
)

// internal logs err with its details and returns the generic msg.
func (s *store) internal(ctx context.Context, msg string, err error, args ...any) error {
	s.log.Error(ctx, msg, append(args, "error", err)...)
	return &opError{kind: common.ErrorInternal, msg: msg}
}

// guard converts a panic in an operation into a failed result.
func guard[T any](ctx context.Context, s *store, msg string, res *Result[T]) {
	if r := recover(); r != nil {
		*res = fail[T](s.internal(ctx, msg, fmt.Errorf("panic: %v", r)))
	}
}
