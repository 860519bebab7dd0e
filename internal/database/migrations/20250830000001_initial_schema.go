package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/scrobblyx/crowned/internal/database/types"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.UserBinding)(nil),
			(*types.CrownRecord)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table: %w", err)
			}
		}

		// Crown listings are always per guild, ordered by play count.
		_, err := db.NewRaw(
			"CREATE INDEX IF NOT EXISTS crown_records_guild_play_count_idx " +
				"ON crown_records (guild_id, play_count DESC)").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create crown index: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for _, table := range []string{"crown_records", "user_bindings"} {
			_, err := db.NewDropTable().
				Table(table).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}
		return nil
	})
}
