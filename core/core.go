package core

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func ConnectDB(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("failed to connect to DB from GORM: %v", err))
	}
	return db
}

// DirectoryModels lists the shared entities in migration order.
// The planning table lives in planning/model and migrates after these.
func DirectoryModels() []interface{} {
	return []interface{}{
		&Equipe{},
		&Employee{},
		&Chantier{},
		&ChantierDocument{},
		&ChantierStatusEntry{},
		&Commande{},
		&Piste{},
	}
}
