package database

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Migration is one idempotent schema step. Steps register through
// RegisterMigration in an init function and run in ID order.
type Migration struct {
	ID   string
	Name string
	Up   func(db *gorm.DB) error
}

var registry []Migration

func RegisterMigration(m Migration) {
	for _, existing := range registry {
		if existing.ID == m.ID {
			panic(fmt.Sprintf("migration with ID %s already registered", m.ID))
		}
	}
	registry = append(registry, m)
}

type MigrationsManager struct {
	db *gorm.DB
}

func NewMigrationsManager(db *gorm.DB) *MigrationsManager {
	return &MigrationsManager{db: db}
}

// ApplyPending runs every registered migration that has no row in the
// version table yet, recording each one as it lands.
func (m *MigrationsManager) ApplyPending() error {
	if err := m.ensureVersionTable(); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}
	done, err := m.appliedIDs()
	if err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}

	pending := make([]Migration, 0, len(registry))
	for _, mig := range registry {
		if _, ok := done[mig.ID]; !ok {
			pending = append(pending, mig)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })

	for _, mig := range pending {
		if mig.Up == nil {
			return fmt.Errorf("migration %s has no Up function", mig.ID)
		}
		if err := mig.Up(m.db); err != nil {
			return fmt.Errorf("apply migration %s (%s): %w", mig.ID, mig.Name, err)
		}
		if err := m.record(mig); err != nil {
			return fmt.Errorf("record migration %s: %w", mig.ID, err)
		}
	}
	return nil
}

func (m *MigrationsManager) ensureVersionTable() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS public.migration_version (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	return m.db.Exec(ddl).Error
}

func (m *MigrationsManager) appliedIDs() (map[string]struct{}, error) {
	var ids []string
	if err := m.db.Raw("SELECT id FROM public.migration_version").Scan(&ids).Error; err != nil {
		return nil, err
	}
	applied := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		applied[id] = struct{}{}
	}
	return applied, nil
}

func (m *MigrationsManager) record(mig Migration) error {
	return m.db.Exec(
		"INSERT INTO public.migration_version (id, name, applied_at) VALUES (?, ?, ?)",
		mig.ID, mig.Name, time.Now(),
	).Error
}
