// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration keys and defaults.
const (
	defaultDataDir = "~/.local/share/homeease"

	// DefaultTimezoneOffsetHours is the reporting timezone offset.
	// Record dates and activity-log timestamps use this fixed offset
	// regardless of the host clock's zone.
	DefaultTimezoneOffsetHours = 8
)

// SetDefaults registers the configuration defaults with viper.
func SetDefaults() {
	viper.SetDefault("data.dir", defaultDataDir)
	viper.SetDefault("data.file", "")
	viper.SetDefault("data.categories_file", "")
	viper.SetDefault("data.backup_dir", "")
	viper.SetDefault("data.activity_log", "")
	viper.SetDefault("data.timezone_offset_hours", DefaultTimezoneOffsetHours)
	viper.SetDefault("validation.max_field_length", 0)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

// DataFile returns the path of the expense ledger CSV file.
func DataFile() string {
	return pathOr("data.file", "expenses.csv")
}

// CategoriesFile returns the path of the category vocabulary file.
func CategoriesFile() string {
	return pathOr("data.categories_file", "categories.txt")
}

// BackupDir returns the directory holding backup archives.
func BackupDir() string {
	return pathOr("data.backup_dir", "backups")
}

// ActivityLogFile returns the path of the append-only activity log.
func ActivityLogFile() string {
	return pathOr("data.activity_log", "activity.log")
}

// MaxFieldLength returns the configured cap on category and description
// length. Zero means unbounded.
func MaxFieldLength() int {
	return viper.GetInt("validation.max_field_length")
}

// ReportingLocation returns the fixed-offset timezone used for record
// dates and activity-log timestamps.
func ReportingLocation() *time.Location {
	hours := viper.GetInt("data.timezone_offset_hours")
	name := fmt.Sprintf("UTC%+d", hours)
	return time.FixedZone(name, hours*60*60)
}

// pathOr resolves a configured path, falling back to a file name inside
// the data directory when the key is unset.
func pathOr(key, fallback string) string {
	if p := viper.GetString(key); p != "" {
		return ExpandPath(p)
	}
	return filepath.Join(ExpandPath(viper.GetString("data.dir")), fallback)
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
