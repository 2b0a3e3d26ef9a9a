package models

import (
	"log"

	"github.com/udyogbooks/inventory_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&CatalogItem{}, &BOMComponent{},
		&InventoryItem{}, &StockMovement{},
		&Expense{}, &ExpenseLineItem{},
		&SalesDocument{}, &SalesLineItem{},
		&ProductionOrder{},
		&SyncMarker{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
