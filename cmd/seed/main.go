package main

import (
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mybtp.com/mybtp/core"
	planningmodel "mybtp.com/mybtp/planning/model"
	"mybtp.com/mybtp/utils"
)

func main() {
	dsn := os.Getenv("DSN") //"root:development@tcp(localhost:3306)/mybtp?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}

	models := append(core.DirectoryModels(), &planningmodel.Planning{})
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if os.Getenv("SEED_DEMO") != "true" {
		return
	}

	equipe := core.Equipe{Name: "Équipe Nord", Color: "#2D9CDB"}
	if err := db.Create(&equipe).Error; err != nil {
		log.Fatalf("failed to create equipe: %v", err)
	}

	chef := core.Employee{
		Email:     "marc.leroy@mybtp.example",
		FirstName: "Marc",
		LastName:  "Leroy",
		UserType:  core.UserTypeChefEquipe,
		CoutH:     utils.Ptr(decimal.NewFromInt(25)),
		EquipeId:  &equipe.EquipeId,
		Actif:     true,
	}
	ouvrier := core.Employee{
		Email:     "lea.martin@mybtp.example",
		FirstName: "Léa",
		LastName:  "Martin",
		UserType:  core.UserTypeEmploye,
		CoutH:     utils.Ptr(decimal.NewFromInt(18)),
		EquipeId:  &equipe.EquipeId,
		Actif:     true,
	}
	for _, e := range []*core.Employee{&chef, &ouvrier} {
		if err := db.Create(e).Error; err != nil {
			log.Fatalf("failed to create employee: %v", err)
		}
	}

	chantier := core.Chantier{
		Contact:          "Mme Dupont",
		TelephoneContact: "06 12 34 56 78",
		ClientFinalType:  core.ClientTypeParticulier,
		AdresseChantier:  "12 rue de la Paix",
		CpVilleChantier:  "75002",
		ChefChantierId:   &chef.EmployeeId,
		DevisHT:          decimal.NewFromInt(15000),
	}
	if verrs, err := core.SaveChantier(db, &chantier); err != nil {
		log.Fatalf("failed to save chantier: %v", err)
	} else if verrs.HasErrors() {
		log.Fatalf("invalid demo chantier: %v", verrs)
	}

	date := utils.ParisNow().Truncate(24 * time.Hour)
	log.Printf("seeded chantier %s starting %s", chantier.NameChantier, date.Format(time.DateOnly))
}
