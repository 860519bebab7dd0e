// Package models contains the database access objects for the durable state:
// the user registry and the crown ledger.
package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/database/dbretry"
	"github.com/scrobblyx/crowned/internal/database/types"
)

// BindingModel handles database operations for Last.fm username bindings.
type BindingModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewBinding creates a new binding model instance.
func NewBinding(db *bun.DB, logger *zap.Logger) *BindingModel {
	return &BindingModel{
		db:     db,
		logger: logger.Named("db_binding"),
	}
}

// Get retrieves the binding for a Discord user.
// Returns nil without error when the user is not registered.
func (m *BindingModel) Get(ctx context.Context, userID uint64) (*types.UserBinding, error) {
	binding, err := dbretry.Operation(ctx, func(ctx context.Context) (*types.UserBinding, error) {
		var b types.UserBinding
		err := m.db.NewSelect().
			Model(&b).
			Where("user_id = ?", userID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to get binding: %w", err)
		}
		return &b, nil
	})
	if err != nil {
		return nil, err
	}
	return binding, nil
}

// Set registers or replaces a user's Last.fm username. Last writer wins.
func (m *BindingModel) Set(ctx context.Context, userID uint64, username string) error {
	binding := &types.UserBinding{UserID: userID, Username: username}

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(binding).
			On("CONFLICT (user_id) DO UPDATE").
			Set("username = EXCLUDED.username").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to set binding: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Debug("Stored binding",
		zap.Uint64("userID", userID),
		zap.String("username", username))

	return nil
}

// List returns every binding, in no particular order.
func (m *BindingModel) List(ctx context.Context) ([]*types.UserBinding, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.UserBinding, error) {
		var bindings []*types.UserBinding
		err := m.db.NewSelect().
			Model(&bindings).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list bindings: %w", err)
		}
		return bindings, nil
	})
}
