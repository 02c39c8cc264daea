// Migrates persistent state from the file backend into the SQLite backend.
// Each <key>.json file under the state directory becomes one kv row.
//
// Usage: migrate_state <state_dir> <sqlite_path>
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"streamhaven/internal/storage"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: migrate_state <state_dir> <sqlite_path>")
	}
	stateDir := os.Args[1]
	sqlitePath := os.Args[2]

	dst, err := storage.OpenSQLite(sqlitePath)
	if err != nil {
		log.Fatalf("open sqlite store: %v", err)
	}
	defer dst.Close()

	entries, err := os.ReadDir(stateDir)
	if err != nil {
		log.Fatalf("read state directory: %v", err)
	}

	ctx := context.Background()
	migrated := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		key := strings.TrimSuffix(name, ".json")

		value, err := os.ReadFile(filepath.Join(stateDir, name))
		if err != nil {
			log.Printf("[migrate] skipping %s: %v", name, err)
			continue
		}
		if err := dst.Set(ctx, key, string(value)); err != nil {
			log.Fatalf("write key %q: %v", key, err)
		}
		migrated++
	}

	log.Printf("[migrate] migrated %d keys from %s to %s", migrated, stateDir, sqlitePath)
}
