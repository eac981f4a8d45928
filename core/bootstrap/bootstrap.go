// Package bootstrap wires shared startup steps: logging, database, migrations.
package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	coreconfig "tutorbot/core/config"
	"tutorbot/core/database"
	"tutorbot/core/logger"
)

// Options controls which startup steps run.
type Options struct {
	Core     *coreconfig.Config
	Database database.Config

	SkipMigrations bool
}

// Init runs logger initialization, connects to Postgres and applies migrations.
// The returned DB is ready for use; the caller owns closing it.
func Init(opts Options) (*sqlx.DB, error) {
	if err := logger.InitLogger(opts.Core); err != nil {
		return nil, fmt.Errorf("bootstrap: init logger: %w", err)
	}

	db, err := database.Connect(opts.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: connect database: %w", err)
	}

	if !opts.SkipMigrations {
		if err := database.RunMigrations(opts.Database); err != nil {
			db.Close()
			return nil, fmt.Errorf("bootstrap: migrations: %w", err)
		}
	}
	return db, nil
}
