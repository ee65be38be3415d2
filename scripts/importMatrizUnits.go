package main

import (
	"encoding/csv"
	"log"
	"os"
	"strings"

	"lms/config"
	"lms/database"
	"lms/models"
	unitController "lms/controllers/unit"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	path := "MatrizUnits.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(strings.ToLower(h))] = i
	}

	created := 0
	updated := 0
	skipped := 0

	for _, row := range records[1:] {
		unit := models.Unit{
			Code:  getField(row, headerIndex, "code"),
			Name:  getField(row, headerIndex, "name"),
			Email: getField(row, headerIndex, "email"),
			Phone: getField(row, headerIndex, "phone"),
			City:  getField(row, headerIndex, "city"),
			State: getField(row, headerIndex, "state"),
			CEP:   getField(row, headerIndex, "cep"),
			Phase: getField(row, headerIndex, "phase"),
		}

		if unit.Code == "" {
			skipped++
			continue
		}
		if unit.Phase == "" {
			unit.Phase = models.UnitPhaseImplantacao
		}

		_, wasCreated, err := unitController.UpsertUnitFromMatriz(database.Database.Db, unit)
		if err != nil {
			log.Printf("Error importing unit %s: %v", unit.Code, err)
			skipped++
			continue
		}
		if wasCreated {
			created++
		} else {
			updated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Created: %d", created)
	log.Printf("Updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
