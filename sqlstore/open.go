package sqlstore

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	ledgercore "github.com/mtelahun/account-engine-sub001"
)

// Open dials the gorm.DB for cfg.Driver. "sqlite" uses the pure-Go
// glebarez/sqlite driver (no cgo), intended for tests; "postgres" uses
// gorm.io/driver/postgres for production deployments.
func Open(cfg Config) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
		if err != nil {
			return nil, ledgercore.WrapInternal(err, "open postgres")
		}
		return db, nil
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
		if err != nil {
			return nil, ledgercore.WrapInternal(err, "open sqlite")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unknown driver %q", cfg.Driver)
	}
}
