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

// CrownModel handles database operations for the crown ledger.
type CrownModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCrown creates a new crown model instance.
func NewCrown(db *bun.DB, logger *zap.Logger) *CrownModel {
	return &CrownModel{
		db:     db,
		logger: logger.Named("db_crown"),
	}
}

// Get retrieves the crown record for an artist in a guild.
// Returns nil without error when no crown has been claimed.
func (m *CrownModel) Get(ctx context.Context, guildID uint64, artistKey string) (*types.CrownRecord, error) {
	record, err := dbretry.Operation(ctx, func(ctx context.Context) (*types.CrownRecord, error) {
		var r types.CrownRecord
		err := m.db.NewSelect().
			Model(&r).
			Where("guild_id = ?", guildID).
			Where("artist_key = ?", artistKey).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to get crown: %w", err)
		}
		return &r, nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Upsert replaces the full crown record for its (guild, artist) key.
// Row-level atomicity is all the ledger needs; concurrent resolutions for
// the same artist settle by last write.
func (m *CrownModel) Upsert(ctx context.Context, record *types.CrownRecord) error {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(record).
			On("CONFLICT (guild_id, artist_key) DO UPDATE").
			Set("artist_display = EXCLUDED.artist_display").
			Set("holder_id = EXCLUDED.holder_id").
			Set("play_count = EXCLUDED.play_count").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert crown: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Debug("Stored crown",
		zap.Uint64("guildID", record.GuildID),
		zap.String("artistKey", record.ArtistKey),
		zap.Uint64("holderID", record.HolderID),
		zap.Int("playCount", record.PlayCount))

	return nil
}

// ListForGuild returns every crown in a guild, highest play count first.
func (m *CrownModel) ListForGuild(ctx context.Context, guildID uint64) ([]*types.CrownRecord, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.CrownRecord, error) {
		var records []*types.CrownRecord
		err := m.db.NewSelect().
			Model(&records).
			Where("guild_id = ?", guildID).
			Order("play_count DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list crowns: %w", err)
		}
		return records, nil
	})
}
