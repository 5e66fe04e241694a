// Package store persists invocation history for the local development
// server. The execution core does not depend on it; the server records each
// handled invocation so recent activity can be inspected over the API.
package store

import (
	"context"
	"errors"

	"github.com/lamina-run/lamina/internal/model"
)

// ErrNotFound is returned when an invocation record is not found.
var ErrNotFound = errors.New("invocation not found")

// InvocationStats holds aggregate execution statistics.
type InvocationStats struct {
	Total         int            `json:"total"`
	CountByStatus map[string]int `json:"count_by_status"`
	CountBySource map[string]int `json:"count_by_source"`
	AvgDurationMS float64        `json:"avg_duration_ms"`
}

// Store defines the persistence operations for invocation records.
type Store interface {
	CreateInvocation(ctx context.Context, inv *model.Invocation) error
	GetInvocation(ctx context.Context, id string) (*model.Invocation, error)
	ListInvocations(ctx context.Context, limit, offset int) ([]*model.Invocation, int, error)
	GetInvocationStats(ctx context.Context) (*InvocationStats, error)
	Close() error
}
