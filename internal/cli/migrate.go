package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/terraincognita07/stackcheck/internal/db"
	"gorm.io/gorm"
)

// RunMigrateCommand reports the schema state of a database that db.Open has
// already brought up to date.
func RunMigrateCommand(ctx context.Context, database *gorm.DB, driver string, out io.Writer) error {
	if driver == db.DriverPostgres {
		fmt.Fprintln(out, "✅ Postgres schema reconciled from models")
		return nil
	}

	recorded, err := db.RecordedMigrations(ctx, database)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ Schema up to date (%d migrations)\n", len(recorded))
	for _, name := range recorded {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}
