package models

// TableWidthsKeyPrefix prefixes the database setting key holding one table's
// saved column widths; the full key is the prefix plus the table identifier.
const TableWidthsKeyPrefix = "table-widths-"

// UISettingsKey is the database setting key for general UI preferences.
const UISettingsKey = "ui_settings"
