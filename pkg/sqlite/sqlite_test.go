package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadimbarashkov/video-api/migrations"
)

func TestRunMigrations(t *testing.T) {
	db, err := New(context.Background(), ":memory:?_loc=UTC")
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	err = RunMigrations(db, migrations.FS, migrations.SQLiteDir)
	require.NoError(t, err)

	t.Run("tables created", func(t *testing.T) {
		var tables []string
		err := db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('videos', 'clips') ORDER BY name`)

		assert.NoError(t, err)
		assert.Equal(t, []string{"clips", "videos"}, tables)
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		err := RunMigrations(db, migrations.FS, migrations.SQLiteDir)

		assert.NoError(t, err)
	})

	t.Run("unknown directory", func(t *testing.T) {
		err := RunMigrations(db, migrations.FS, "mysql")

		assert.Error(t, err)
	})
}
