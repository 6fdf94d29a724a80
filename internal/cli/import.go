package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poihub/poi-manager/internal/config"
	"github.com/poihub/poi-manager/internal/database"
	"github.com/poihub/poi-manager/internal/database/pois"
	"github.com/poihub/poi-manager/internal/ingest"
	"github.com/poihub/poi-manager/internal/tasks"
)

// ImportCommand ingests one or more PoI files directly, without going
// through the task queue. Row-level errors are reported but do not fail
// the command; only file-level fatal errors do.
type ImportCommand struct {
	DatabasePath string
	Verbose      bool
	Async        bool
	Paths        []string
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print per-row errors and warnings")
	fs.BoolVar(&cmd.Async, "async", false, "Enqueue the files onto the task queue instead of importing inline")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import [options] <file> [<file>...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import PoI data from CSV, JSON, and XML files.\n\n")
		fmt.Fprintf(os.Stderr, "The format of each file is selected by its extension. Records are\n")
		fmt.Fprintf(os.Stderr, "upserted by external id, so re-importing a file is safe.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import pois.csv pois.json pois.xml\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -db ./data/poi.db -verbose pois.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -async pois.csv\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.Paths = fs.Args()
	if len(cmd.Paths) == 0 {
		return fmt.Errorf("at least one file path is required")
	}

	return nil
}

func (cmd *ImportCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	if cmd.Async {
		return cmd.enqueue(absDBPath)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	ingestor := ingest.NewIngestor(pois.NewRepository(db.DB))

	var fatalErrors int
	for _, path := range cmd.Paths {
		report, err := ingestor.IngestFile(path)
		if err != nil {
			fatalErrors++
			fmt.Printf("%s: FAILED: %v\n", path, err)
			continue
		}

		fmt.Printf("%s: %d imported, %d failed\n", path, report.Succeeded, report.Failed)

		if cmd.Verbose {
			for _, rowErr := range report.Errors {
				fmt.Printf("  [ERROR] row %d: %s\n", rowErr.Row, rowErr.Reason)
			}
			for _, warning := range report.Warnings {
				fmt.Printf("  [WARN]  row %d: %s\n", warning.Row, warning.Detail)
			}
		}
	}

	// Row-level errors alone exit zero; a file that could not be
	// imported at all is a command failure.
	if fatalErrors > 0 {
		return fmt.Errorf("%d file(s) failed to import", fatalErrors)
	}
	return nil
}

// enqueue submits the files onto the shared task queue and returns
// without waiting. The running server's workers pick them up.
func (cmd *ImportCommand) enqueue(dbPath string) error {
	client, err := tasks.NewClient(dbPath, tasks.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to open task queue: %w", err)
	}
	defer client.Close()

	handles, err := tasks.NewDispatcher(client).SubmitMany(cmd.Paths)
	for _, handle := range handles {
		fmt.Printf("%s: queued as task %s\n", handle.Path, handle.TaskID)
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue some files: %w", err)
	}
	return nil
}
