// Command import-grades loads a grade-distribution CSV into the SQLite
// grade store so interactive lookups skip the file parse.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/avasisht/gradelens/internal/adapters/gradestore"
	"github.com/avasisht/gradelens/pkg/logger"
)

const importTimeout = 30 * time.Second

func main() {
	var (
		csvPath = flag.String("csv", "grades.csv", "input CSV path with Year,Semester,Course,Grade,Count columns")
		dbPath  = flag.String("db", "grades.db", "output SQLite database path")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()

	records, err := gradestore.NewCSVStore(*csvPath).Load(ctx)
	if err != nil {
		log.Fatal(ctx, "read csv failed", logger.Error(err))
	}

	db, err := gradestore.OpenSQLite(*dbPath)
	if err != nil {
		log.Fatal(ctx, "open sqlite failed", logger.Error(err))
	}
	defer db.Close()

	if err := db.Import(ctx, records); err != nil {
		log.Fatal(ctx, "import failed", logger.Error(err))
	}

	log.Info(ctx, "import complete",
		logger.String("csv", *csvPath),
		logger.String("db", *dbPath),
		logger.Int("records", len(records)),
	)
}
