// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/carterperez-dev/contacts-api/internal/config"
	"github.com/carterperez-dev/contacts-api/internal/contact"
	"github.com/carterperez-dev/contacts-api/internal/core"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	iniPath := flag.String("ini", "config.ini", "path to legacy INI config file")
	envPath := flag.String("env", ".env", "path to dotenv file")
	email := flag.String("email", "", "email of the contact to update")
	role := flag.String("role", "", "new role: admin, moderator or user")
	flag.Parse()

	paths := config.Paths{YAML: *configPath, INI: *iniPath, Env: *envPath}

	if err := run(paths, *email, *role); err != nil {
		slog.Error("setrole failed", "error", err)
		os.Exit(1)
	}
}

func run(paths config.Paths, email, role string) error {
	if email == "" || !contact.IsValidRole(role) {
		return fmt.Errorf("usage: setrole -email <email> -role <admin|moderator|user>")
	}

	cfg, err := config.Load(paths)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exits right after

	svc := contact.NewService(contact.NewRepository(db.DB))

	updated, err := svc.SetRoleByEmail(ctx, email, role)
	if err != nil {
		return err
	}

	slog.Info("role updated",
		"contact_id", updated.ID,
		"email", updated.Email,
		"role", updated.RoleName(),
	)
	return nil
}
