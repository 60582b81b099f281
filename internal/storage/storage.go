// ABOUTME: Run ledger abstraction over the SQLite and Charm backends
// ABOUTME: Open picks the backend named in configuration
package storage

import (
	"fmt"

	"github.com/samber/mo"

	"github.com/harper/abmodel/internal/charm"
	"github.com/harper/abmodel/internal/config"
	"github.com/harper/abmodel/internal/models"
	"github.com/harper/abmodel/internal/storage/sqlite"
)

// Ledger backends
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendNone   = "none"
)

// Ledger records pipeline runs and answers history queries
type Ledger interface {
	SaveRun(run *models.RunRecord) error
	GetRun(runID string) (mo.Option[*models.RunRecord], error)
	ListRuns(limit int) ([]models.RunRecord, error)
	Close() error
}

// Open returns the ledger selected by cfg.Ledger
func Open(cfg *config.Config) (Ledger, error) {
	switch cfg.Ledger {
	case BackendSQLite:
		store, err := sqlite.NewRunStore(cfg.LedgerPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open run ledger at %s: %w", cfg.LedgerPath, err)
		}
		return store, nil
	case BackendCharm:
		client, err := charm.NewClient(charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.CharmAutoSync,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open charm ledger: %w", err)
		}
		return client, nil
	case BackendNone, "":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger)
	}
}

// Nop discards every run
type Nop struct{}

func (Nop) SaveRun(*models.RunRecord) error { return nil }

func (Nop) GetRun(string) (mo.Option[*models.RunRecord], error) {
	return mo.None[*models.RunRecord](), nil
}

func (Nop) ListRuns(int) ([]models.RunRecord, error) { return nil, nil }

func (Nop) Close() error { return nil }
