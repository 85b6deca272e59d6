package database

import (
	"path/filepath"
	"testing"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFileAndMigrate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "coach.db")
	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, Migrate(db))
	for _, table := range []any{&models.Profile{}, &models.WeeklyPlan{}, &models.CalendarAction{}, &models.SeriesLog{}, &models.Meal{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
	assert.FileExists(t, dsn)
}
