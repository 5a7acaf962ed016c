package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"mybtp.com/mybtp/core"
	"mybtp.com/mybtp/utils"
)

// Expected columns: email;prenom;nom;type;cout_h;cout_j
func main() {
	file := flag.String("file", "", "CSV file to import")
	flag.Parse()

	if *file == "" {
		log.Fatal("usage: importemployees -file employees.csv")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *file, err)
	}
	defer f.Close()

	rows, err := utils.ParseCSV(f)
	if err != nil {
		log.Fatalf("failed to parse CSV: %v", err)
	}

	db := core.ConnectDB(os.Getenv("DSN"))

	imported := 0
	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], "email") {
			continue // header
		}
		if len(row) < 4 {
			log.Printf("row %d: expected at least 4 columns, got %d", i+1, len(row))
			continue
		}

		employee := core.Employee{
			Email:     strings.TrimSpace(row[0]),
			FirstName: strings.TrimSpace(row[1]),
			LastName:  strings.TrimSpace(row[2]),
			UserType:  strings.TrimSpace(row[3]),
			Actif:     true,
		}
		if employee.UserType == "" {
			employee.UserType = core.UserTypeEmploye
		}
		if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
			rate, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(row[4]), ",", ".", 1))
			if err != nil {
				log.Printf("row %d: invalid cout_h %q", i+1, row[4])
				continue
			}
			employee.CoutH = &rate
		}
		if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
			rate, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(row[5]), ",", ".", 1))
			if err != nil {
				log.Printf("row %d: invalid cout_j %q", i+1, row[5])
				continue
			}
			employee.CoutJ = &rate
		}

		verrs, err := core.SaveEmployee(db, &employee)
		if err != nil {
			log.Fatalf("row %d: %v", i+1, err)
		}
		if verrs.HasErrors() {
			log.Printf("row %d rejected: %v", i+1, verrs)
			continue
		}
		imported++
	}

	log.Printf("imported %d employees", imported)
}
