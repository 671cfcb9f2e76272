package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"postboard/app/repositories"

	"github.com/dgraph-io/badger/v4"
)

// Version is reported by the version command.
const Version = "1.0.0"

// HandleCommand runs a postboard subcommand and returns an exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "serve":
		return RunAppServer(args[1:])
	case "clean", "init", "backup", "restore":
		path, rest, err := maintenanceFlags(cmd, args[1:])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
		return runMaintenance(cmd, path, rest)
	case "version":
		fmt.Printf("postboard version %s\n", Version)
		return 0
	case "help":
		printHelp()
		return 0
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printHelp()
		return 1
	}
}

// printHelp prints the command overview.
func printHelp() {
	helpText := `Usage: postboard <command> [options]

Commands:
  serve [flags]     Run the posts/comments HTTP service
                      --addr              listen address (POSTBOARD_ADDR, default :8080)
                      --driver            badger, postgres or memory (POSTBOARD_DRIVER, default badger)
                      --data-dir          badger directory (POSTBOARD_DATA_DIR, default data/badger)
                      --database-url      postgres DSN (POSTBOARD_DATABASE_URL)
                      --shutdown-timeout  graceful stop timeout (POSTBOARD_SHUTDOWN_TIMEOUT, default 10s)
  clean             Clean the database
  init              Initialize a new empty database
  backup            Create a backup of the database
  restore [file]    Restore database from backup
                      clean, init, backup and restore accept --data-dir
                      (POSTBOARD_DATA_DIR, default data/badger)
  version           Show version information
  help              Display this help message
`
	fmt.Println(helpText)
}

// runMaintenance runs one of the database commands against path.
func runMaintenance(cmd, path string, args []string) int {
	switch cmd {
	case "clean":
		clean(path)
		return 0
	case "init":
		initDb(path)
		return 0
	case "backup":
		return backup(path)
	default:
		if len(args) < 1 {
			fmt.Println("Error: backup file path required for restore")
			return 1
		}
		return restore(path, args[0])
	}
}

func confirm(prompt string) bool {
	fmt.Print(prompt + " [y/N] ")
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}

// clean removes the database.
func clean(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return
	}

	if !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Println("Operation cancelled")
		return
	}

	if err := os.RemoveAll(path); err != nil {
		fmt.Printf("Failed to clean database: %v\n", err)
		return
	}
	fmt.Println("Database cleaned successfully")
}

// initDb initializes a new empty database.
func initDb(path string) {
	if _, err := os.Stat(path); err == nil {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return
	}

	db, err := badger.Open(badger.DefaultOptions(path))
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return
	}
	defer db.Close()

	fmt.Println("Database initialized successfully")
}

// backup writes a full backup of the database to backupDir.
func backup(path string) int {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return 1
	}

	if err := os.MkdirAll(backupDir, 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	store, err := repositories.OpenBadger(path)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := store.DB().Backup(f, 0); err != nil {
		fmt.Printf("Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore loads a backup into a fresh database.
func restore(path, backupFile string) int {
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(path); err == nil {
		if !confirm("Existing database found. Do you want to replace it?") {
			fmt.Println("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(path); err != nil {
			fmt.Printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return 1
	}

	store, err := repositories.OpenBadger(path)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return store.DB().Load(f, 4)
	}()
	if err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Println("Database restored successfully")
	return 0
}
