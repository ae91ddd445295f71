package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"rvsalt/logger"
	"rvsalt/models"
)

// GetSetting retrieves a specific setting value from the app_settings table.
func GetSetting(key string) (string, error) {
	var value string
	err := DB.QueryRow("SELECT value FROM app_settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil // Return empty string if not found, not an error
		}
		return "", fmt.Errorf("failed to get setting '%s': %w", key, err)
	}
	return value, nil
}

// SetSetting saves or updates a specific setting value in the app_settings table.
func SetSetting(key, value string) error {
	stmt, err := DB.Prepare("INSERT OR REPLACE INTO app_settings (key, value) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare set setting statement for key '%s': %w", key, err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(key, value)
	if err != nil {
		return fmt.Errorf("failed to execute set setting for key '%s': %w", key, err)
	}
	return nil
}

// SettingsWidthStore backs tabular.WidthStore with the app_settings table.
// Each table's width list lives under its own key so one table's save never
// touches another's.
type SettingsWidthStore struct{}

func (SettingsWidthStore) LoadWidths(tableID string) ([]string, error) {
	raw, err := GetSetting(models.TableWidthsKeyPrefix + tableID)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var widths []string
	if err := json.Unmarshal([]byte(raw), &widths); err != nil {
		logger.Error("SettingsWidthStore: Error unmarshalling widths for table '%s': %v. Stored value: %s", tableID, err, raw)
		// Corrupt saved state resets to defaults instead of failing the table.
		return nil, nil
	}
	return widths, nil
}

func (SettingsWidthStore) SaveWidths(tableID string, widths []string) error {
	if widths == nil {
		widths = []string{}
	}
	raw, err := json.Marshal(widths)
	if err != nil {
		return fmt.Errorf("failed to marshal widths for table '%s': %w", tableID, err)
	}
	return SetSetting(models.TableWidthsKeyPrefix+tableID, string(raw))
}

// GetAllTableLayouts returns the saved width list of every table.
func GetAllTableLayouts() (models.AllTableLayouts, error) {
	rows, err := DB.Query("SELECT key, value FROM app_settings WHERE key LIKE ?", models.TableWidthsKeyPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("querying table layouts: %w", err)
	}
	defer rows.Close()

	layouts := make(models.AllTableLayouts)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning table layout row: %w", err)
		}
		var widths models.TableWidths
		if err := json.Unmarshal([]byte(value), &widths); err != nil {
			logger.Error("GetAllTableLayouts: Skipping corrupt layout '%s': %v", key, err)
			continue
		}
		layouts[strings.TrimPrefix(key, models.TableWidthsKeyPrefix)] = widths
	}
	return layouts, rows.Err()
}

// ResetAllTableLayouts removes every saved table width list.
func ResetAllTableLayouts() error {
	_, err := DB.Exec("DELETE FROM app_settings WHERE key LIKE ?", models.TableWidthsKeyPrefix+"%")
	if err != nil {
		return fmt.Errorf("resetting table layouts: %w", err)
	}
	return nil
}
