package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"dvrp-solver-service/internal/adapters/distance"
	"dvrp-solver-service/internal/adapters/repositories"
	"dvrp-solver-service/internal/api"
	"dvrp-solver-service/internal/config"
	"dvrp-solver-service/internal/metrics"
	"dvrp-solver-service/internal/platform/db"
	"dvrp-solver-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, SQL or HTTP distance
// source) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	metrics.RegisterDefault()

	port := config.Get("PORT", "8080")
	defaultOrigin := os.Getenv("DEFAULT_ORIGIN")

	var (
		pointRepo    ports.PointRepository
		solutionRepo ports.SolutionRepository
		distSource   ports.DistanceSource
	)

	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		pointRepo = repositories.NewSQLPointRepository(pg)
		solutionRepo = repositories.NewSQLSolutionRepository(pg)
		distSource = distance.NewSQLDistanceSource(pg)
	} else {
		dbPath := config.Get("DB_PATH", "data/dvrp.db")
		lite, err := openSqlite(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer lite.Close()

		// Initialize schema and seed demo data on startup for local runs.
		if err := repositories.InitSchema(lite); err != nil {
			log.Fatal(err)
		}
		if seedPath := os.Getenv("SEED_PATH"); seedPath != "" {
			if err := repositories.SeedFromJSON(lite, seedPath); err != nil {
				log.Fatal(err)
			}
		}

		pointRepo = repositories.NewSqlitePointRepository(lite)
		solutionRepo = repositories.NewSqliteSolutionRepository(lite)
		distSource = distance.NewSQLDistanceSource(lite)
	}

	// An external matrix service can replace the SQL distance table.
	if config.Get("DISTANCE_SOURCE", "sql") == "http" {
		src, err := distance.NewHTTPDistanceSource(os.Getenv("MATRIX_API_URL"), os.Getenv("MATRIX_API_KEY"))
		if err != nil {
			log.Fatal(err)
		}
		distSource = src
	}

	router := api.NewRouter(pointRepo, distSource, solutionRepo, metrics.Observer{}, defaultOrigin)

	// Timeouts are tuned for long solves (many iterations on large instances).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openSqlite(dbPath string) (*sql.DB, error) {
	lite, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := lite.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return lite, nil
}
