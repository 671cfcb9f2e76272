package service

import (
	"flag"
	"os"
)

// Database path - variable to allow testing with different paths
var dbPath = "data/badger"

// Backup directory - variable to allow testing with different paths
var backupDir = "data/backups"

// dataDir is the Badger directory used by the maintenance commands.
func dataDir() string {
	if dir := os.Getenv("POSTBOARD_DATA_DIR"); dir != "" {
		return dir
	}
	return dbPath
}

// maintenanceFlags parses the flags shared by clean, init, backup and restore
// and returns the data directory with the remaining arguments.
func maintenanceFlags(name string, args []string) (string, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	dir := fs.String("data-dir", dataDir(), "badger data directory")
	if err := fs.Parse(args); err != nil {
		return "", nil, err
	}
	return *dir, fs.Args(), nil
}
