// AngelaMos | 2026
// bootstrap.go

package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/contacts-api/internal/config"
	"github.com/carterperez-dev/contacts-api/internal/core"
)

// BootstrapAdmin creates the configured admin contact when the contacts
// table is empty. The table lock makes concurrent starts seed at most once.
// It reports whether a contact was created.
func BootstrapAdmin(
	ctx context.Context,
	db *sqlx.DB,
	cfg config.BootstrapConfig,
) (bool, error) {
	if !cfg.Enabled() {
		return false, nil
	}

	hash, err := core.HashPassword(cfg.AdminPassword)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	created := false
	err = core.InTx(ctx, db, nil, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`LOCK TABLE contacts IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("lock contacts: %w", err)
		}

		repo := NewRepository(tx)

		total, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if total > 0 {
			return nil
		}

		role := RoleAdmin
		admin := &Contact{
			FirstName: cfg.AdminFirstName,
			LastName:  cfg.AdminLastName,
			Email:     normalizeEmail(cfg.AdminEmail),
			Password:  hash,
			Phone:     0,
			Birthday:  time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			Role:      &role,
		}

		if err := repo.Create(ctx, admin); err != nil {
			return err
		}

		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}

	return created, nil
}
