// migrate-prefs copies saved characters between preference databases,
// typically from the local SQLite file into PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-prefs \
//	    -sqlite data/prefs.db \
//	    -pg-host localhost \
//	    -pg-user dungeonkit \
//	    -pg-password dungeonkit \
//	    -pg-database dungeonkit
package main

import (
	"flag"
	"log"

	"github.com/lawnchairsociety/dungeonkit/internal/database"
)

func main() {
	sqlitePath := flag.String("sqlite", "data/prefs.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "dungeonkit", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "dungeonkit", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("Preference Migration Tool")
	log.Println("=========================")

	log.Printf("Opening SQLite database: %s", *sqlitePath)
	src, err := database.Open(*sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer src.Close()

	pg := database.DefaultPostgresConfig()
	pg.Host = *pgHost
	pg.Port = *pgPort
	pg.User = *pgUser
	pg.Password = *pgPassword
	pg.Database = *pgDatabase
	pg.SSLMode = *pgSSLMode

	// Opening runs the schema migration, so the prefs table exists afterwards.
	log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
	dst, err := database.OpenWithConfig(database.Config{Driver: "postgres", Postgres: pg})
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL database: %v", err)
	}
	defer dst.Close()

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	}

	count, err := database.CopyPrefs(src, dst, *dryRun)
	if err != nil {
		log.Fatalf("Migration failed after %d values: %v", count, err)
	}

	log.Println("=========================")
	log.Printf("Migration complete! Total values migrated: %d", count)
	if *dryRun {
		log.Println("(DRY RUN - No actual changes were made)")
	}
}
