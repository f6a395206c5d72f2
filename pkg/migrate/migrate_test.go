package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/config"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrationDirsAreValid(t *testing.T) {
	for _, driver := range []string{config.DBDriverPostgres, config.DBDriverSQLite} {
		require.NoError(t, ValidateDir(DirFor("migrations", driver)), driver)
	}
}

func TestMigrationDirsStayInStep(t *testing.T) {
	pg, err := filepath.Glob(filepath.Join(DirFor("migrations", config.DBDriverPostgres), "*.sql"))
	require.NoError(t, err)
	lite, err := filepath.Glob(filepath.Join(DirFor("migrations", config.DBDriverSQLite), "*.sql"))
	require.NoError(t, err)
	require.Equal(t, len(pg), len(lite))
	for i := range pg {
		require.Equal(t, filepath.Base(pg[i]), filepath.Base(lite[i]))
	}
}

func TestInventoryMigrationContainsSchema(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join(DirFor("migrations", config.DBDriverPostgres), "*_create_inventory_table.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	content := string(data)

	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS inventory",
		"price NUMERIC(12,2) NOT NULL",
		"inventory_value NUMERIC(20,2) NOT NULL",
		"sales_value NUMERIC(20,2) NOT NULL",
		"deleted_at TIMESTAMPTZ NULL",
		"CREATE INDEX IF NOT EXISTS idx_inventory_type",
		"DROP TABLE IF EXISTS inventory",
	} {
		require.Contains(t, content, sub)
	}
}

func TestRunUpAndDownOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migrate_run?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	dir := DirFor("migrations", config.DBDriverSQLite)
	require.NoError(t, Run(ctx, sqlDB, config.DBDriverSQLite, dir, "up"))

	require.True(t, conn.Migrator().HasTable("inventory"))
	require.True(t, conn.Migrator().HasTable("users"))

	version, err := CurrentVersion(ctx, sqlDB, config.DBDriverSQLite)
	require.NoError(t, err)
	require.EqualValues(t, 20250301090100, version)

	require.NoError(t, MigrateToVersion(ctx, sqlDB, config.DBDriverSQLite, dir, "20250301090000"))
	require.False(t, conn.Migrator().HasTable("inventory"))
	require.True(t, conn.Migrator().HasTable("users"))
}

func TestRunRequiresArgs(t *testing.T) {
	require.Error(t, Run(context.Background(), nil, config.DBDriverSQLite, "x", "up"))
	require.Error(t, MigrateToVersion(context.Background(), nil, config.DBDriverSQLite, "x", ""))
}

func TestCreateSQLMigration(t *testing.T) {
	root := t.TempDir()
	paths, err := CreateSQLMigration(root, "Add Supplier Column!")
	require.NoError(t, err)
	require.Len(t, paths, len(Drivers))
	for i, driver := range Drivers {
		require.True(t, strings.HasSuffix(paths[i], "_add_supplier_column.sql"))
		require.Equal(t, DirFor(root, driver), filepath.Dir(paths[i]))
		require.NoError(t, ValidateDir(DirFor(root, driver)))
	}
	require.Equal(t, filepath.Base(paths[0]), filepath.Base(paths[1]))

	_, err = CreateSQLMigration(root, "!!!")
	require.Error(t, err)
}

func TestCreateSQLMigrationRefusesExistingVersion(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	_, err := createSQLMigration(root, "add_supplier", now)
	require.NoError(t, err)

	// A clash in the sqlite dir must not leave a new postgres file behind.
	require.NoError(t, os.Remove(filepath.Join(DirFor(root, config.DBDriverPostgres), "20250601120000_add_supplier.sql")))
	_, err = createSQLMigration(root, "add supplier", now)
	require.ErrorContains(t, err, "already exists")
	_, statErr := os.Stat(filepath.Join(DirFor(root, config.DBDriverPostgres), "20250601120000_add_supplier.sql"))
	require.True(t, os.IsNotExist(statErr))
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, ValidateDir(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	require.Error(t, ValidateDir(dir))

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250101000000_no_down.sql"), []byte("-- +goose Up\n"), 0o644))
	require.Error(t, ValidateDir(dir))
}
