package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/config"
)

var migrationNameRe = regexp.MustCompile(`[^a-z0-9_]+`)

// Drivers lists every engine that carries its own migration directory.
var Drivers = []string{config.DBDriverPostgres, config.DBDriverSQLite}

// CreateSQLMigration writes an empty goose migration for every driver below
// root, all sharing one version so the directories stay in step:
//
//	<root>/<driver>/<YYYYMMDDHHMMSS>_<name>.sql
func CreateSQLMigration(root, name string) ([]string, error) {
	return createSQLMigration(root, name, time.Now().UTC())
}

func createSQLMigration(root, name string, now time.Time) ([]string, error) {
	if root == "" {
		root = DefaultDir
	}
	slug := migrationSlug(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}

	filename := fmt.Sprintf("%s_%s.sql", now.Format("20060102150405"), slug)
	paths := make([]string, 0, len(Drivers))
	for _, driver := range Drivers {
		dir := DirFor(root, driver)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s migration dir: %w", driver, err)
		}
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("migration %s already exists", path)
		}
		paths = append(paths, path)
	}

	// Every target is checked before the first write so a clash leaves no
	// half-created pair behind.
	for i, driver := range Drivers {
		if err := os.WriteFile(paths[i], []byte(migrationTemplate(driver, slug)), 0o644); err != nil {
			return nil, fmt.Errorf("write %s migration: %w", driver, err)
		}
	}
	return paths, nil
}

func migrationSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = migrationNameRe.ReplaceAllString(slug, "_")
	return strings.Trim(slug, "_")
}

func migrationTemplate(driver, slug string) string {
	return fmt.Sprintf(`-- %s (%s)

-- +goose Up

-- +goose Down
`, slug, driver)
}
