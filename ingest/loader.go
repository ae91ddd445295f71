package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rvsalt/database"
	"rvsalt/logger"

	"github.com/google/uuid"
)

// ParseDir reads every *.json export in the data directory into memory. A
// file that fails to parse is logged and skipped; the rows it contributed on
// a previous import stay in the database untouched (last-known-good).
func ParseDir(dataDir string) ([]*ParsedSource, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory '%s': %w", dataDir, err)
	}

	var parsed []*ParsedSource
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dataDir, entry.Name())
		sourceName := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		src, err := ParseFile(path, sourceName)
		if err != nil {
			logger.Error("ParseDir: Skipping '%s': %v", path, err)
			continue
		}
		parsed = append(parsed, src)
	}
	return parsed, nil
}

// Apply writes parsed sources to the database, each under a fresh import
// batch ID. One failing source does not abort the rest.
func Apply(sources []*ParsedSource) error {
	var firstErr error
	for _, src := range sources {
		importID := uuid.New().String()
		if err := database.ReplaceSourceRows(src.Name, src.Filename, importID, src.Sheets); err != nil {
			logger.Error("Apply: Import of source '%s' failed: %v", src.Name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// LoadDir parses and applies the whole data directory.
func LoadDir(dataDir string) error {
	parsed, err := ParseDir(dataDir)
	if err != nil {
		return err
	}
	if len(parsed) == 0 {
		logger.Warn("LoadDir: No export files found in '%s'", dataDir)
		return nil
	}
	return Apply(parsed)
}
