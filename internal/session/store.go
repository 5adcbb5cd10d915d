// Package session stores per-console ViewModelState. State is ephemeral by
// contract: TTL'd key-value entries, never durable persistence.
package session

import (
	"context"
	"errors"

	"github.com/medagenda/agenda-api/internal/model"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	Create(ctx context.Context, state model.ViewModelState) (string, error)
	Get(ctx context.Context, id string) (model.ViewModelState, error)
	Save(ctx context.Context, id string, state model.ViewModelState) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
