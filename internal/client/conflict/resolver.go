// Package conflict contains the strategies that decide how a rejected push
// is reconciled with the remote state.
package conflict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/gophsync/internal/models"
)

// DefaultTimestampField is used when Config.TimestampField is empty
const DefaultTimestampField = "updatedAt"

// ErrUnknownStrategy is returned by New for a strategy name it does not know
var ErrUnknownStrategy = errors.New("unknown conflict strategy")

// Resolver maps a conflict to a resolution. Exactly one resolver is active per
// client.
type Resolver interface {
	Resolve(ctx context.Context, c models.Conflict) (models.Resolution, error)
}

// ResolverFunc adapts an ordinary function to Resolver
type ResolverFunc func(ctx context.Context, c models.Conflict) (models.Resolution, error)

// Resolve calls f(ctx, c)
func (f ResolverFunc) Resolve(ctx context.Context, c models.Conflict) (models.Resolution, error) {
	return f(ctx, c)
}

// Strategy names a built-in resolver
type Strategy string

const (
	StrategyRemoteWins    Strategy = "remote-wins"
	StrategyLocalWins     Strategy = "local-wins"
	StrategyLastWriteWins Strategy = "last-write-wins"
	StrategyFieldMerge    Strategy = "field-merge"
)

// Config selects the active strategy
type Config struct {
	Strategy       Strategy `yaml:"strategy"`
	TimestampField string   `yaml:"timestamp_field"` // поле документа с временем последнего изменения
}

type options struct {
	now func() time.Time
}

// Option configures resolvers built by New
type Option func(*options)

// WithClock overrides the time source used to stamp merged documents
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New builds the resolver described by cfg. An empty strategy selects
// RemoteWins.
func New(cfg Config, logger *slog.Logger, opts ...Option) (Resolver, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	field := cfg.TimestampField
	if field == "" {
		field = DefaultTimestampField
	}

	switch cfg.Strategy {
	case "", StrategyRemoteWins:
		return RemoteWins(), nil
	case StrategyLocalWins:
		return LocalWins(), nil
	case StrategyLastWriteWins:
		return LastWriteWins(field, logger), nil
	case StrategyFieldMerge:
		r := FieldLevelMerge(field)
		r.now = o.now
		return r, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
	}
}
