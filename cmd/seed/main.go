package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jshin/cookshare-backend/config"
	"github.com/jshin/cookshare-backend/internal/app/model"
	"github.com/jshin/cookshare-backend/internal/app/repository"
	"github.com/jshin/cookshare-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports the ingredient catalog from an XLSX fixture. The sheet is expected
// to have two columns: ingredient name and measurement unit, header row first.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	ingredientRepo := repository.NewIngredientRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	ingredients, err := readIngredientsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total ingredients to import: %d\n", len(ingredients))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := ingredientRepo.BulkCreate(ingredients, batchSize); err != nil {
		log.Fatal("Failed to bulk create ingredients:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total ingredients imported: %d\n", len(ingredients))
}

func readIngredientsFromXLSX(filePath string) ([]model.Ingredient, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var ingredients []model.Ingredient
	seen := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 2 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		unit := strings.TrimSpace(row[1])
		if name == "" || unit == "" {
			skippedCount++
			continue
		}

		// The same name may legitimately appear under several units, so the
		// dedup key is the (name, unit) pair.
		key := fmt.Sprintf("%s|%s", strings.ToLower(name), strings.ToLower(unit))
		if seen[key] {
			skippedCount++
			continue
		}
		seen[key] = true

		ingredients = append(ingredients, model.Ingredient{
			Name:            name,
			MeasurementUnit: unit,
		})
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid ingredients: %d\n", len(ingredients))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return ingredients, nil
}
