// Command import loads ingredients from a CSV or XLSX file, creating the ones
// that do not exist yet.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/foodgram/foodgram-backend/config"
	"github.com/foodgram/foodgram-backend/internal/app/repository"
	"github.com/foodgram/foodgram-backend/internal/app/service"
	"github.com/foodgram/foodgram-backend/internal/db"
	"github.com/foodgram/foodgram-backend/pkg/logger"
)

func main() {
	migrate := flag.Bool("migrate", false, "run migrations before importing")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: import [-migrate] <ingredients.csv|ingredients.xlsx>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Initialize(logger.ForEnvironment(cfg.Server.Environment))

	rows, err := readIngredients(path)
	if err != nil {
		logger.Fatal("Failed to read ingredients", err, map[string]interface{}{
			"path": path,
		})
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if *migrate {
		if err := db.Migrate(); err != nil {
			logger.Fatal("Failed to run migrations", err)
		}
	}

	ingredients := service.NewIngredientService(repository.NewUnitOfWork(db.GetDB()))
	result, err := ingredients.Import(rows)
	if err != nil {
		logger.Fatal("Ingredient import failed", err)
	}

	fmt.Printf("Ingredients imported: %d created, %d already present, %d skipped\n",
		result.Created, result.Existing, result.Skipped)
}
