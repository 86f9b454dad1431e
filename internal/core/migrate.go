// AngelaMos | 2026
// migrate.go

package core

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/carterperez-dev/contacts-api/migrations"
)

const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateReset  = "reset"
	MigrateStatus = "status"
)

// Migrate applies the embedded schema migrations in the given direction.
// "down" rolls back exactly one version, "reset" rolls back all of them.
func Migrate(ctx context.Context, db *sql.DB, direction string) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	switch direction {
	case MigrateUp:
		results, err := provider.Up(ctx)
		logResults(results)
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	case MigrateDown:
		result, err := provider.Down(ctx)
		if result != nil {
			logResults([]*goose.MigrationResult{result})
		}
		if err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	case MigrateReset:
		results, err := provider.DownTo(ctx, 0)
		logResults(results)
		if err != nil {
			return fmt.Errorf("migrate reset: %w", err)
		}
	case MigrateStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
		for _, s := range statuses {
			slog.Info("migration status",
				"version", s.Source.Version,
				"file", s.Source.Path,
				"state", string(s.State),
				"applied_at", s.AppliedAt,
			)
		}
	default:
		return fmt.Errorf("unknown migration direction %q: %w", direction, ErrInvalidInput)
	}

	return nil
}

func logResults(results []*goose.MigrationResult) {
	for _, r := range results {
		if r == nil || r.Source == nil {
			continue
		}
		slog.Info("migration applied",
			"version", r.Source.Version,
			"file", r.Source.Path,
			"direction", r.Direction,
			"duration", r.Duration,
		)
	}
}
