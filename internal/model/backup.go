package model

import "time"

// RestoreMode selects how an archive's rows are applied to the live ledger.
type RestoreMode string

const (
	// RestoreOverwrite replaces the live ledger with the archive's contents.
	RestoreOverwrite RestoreMode = "overwrite"
	// RestoreAppend concatenates the archive's rows after the live ledger.
	RestoreAppend RestoreMode = "append"
)

// BackupInfo describes one archive for listing.
type BackupInfo struct {
	CreatedAt time.Time
	ID        string // timestamp portion of the filename, YYYYMMDD_HHMMSS
	Records   int
	FileSize  int64
}
