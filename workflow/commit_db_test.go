package workflow_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/udyogbooks/inventory_backend/config"
	"github.com/udyogbooks/inventory_backend/models"
	"github.com/udyogbooks/inventory_backend/workflow"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	config.SetDB(db)
	models.MigrateTable()
}

func TestCommitExpenseAndPropagateSync(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	before, err := models.GetLastModified(ctx)
	if err != nil || before != 0 {
		t.Fatalf("marker before = %d (err=%v), want 0", before, err)
	}

	_, receipt, err := workflow.CommitExpense(ctx, &models.Expense{
		VendorName: "Acme Traders",
		DocType:    models.ExpenseDocTypeInvoice,
		LineItems: []models.ExpenseLineItem{
			{Description: "18650 cells", Sku: "CELL-A", Quantity: decimal.NewFromInt(5)},
		},
	})
	if err != nil {
		t.Fatalf("CommitExpense: %v", err)
	}
	if len(receipt.Movements) != 1 {
		t.Fatalf("movements = %d, want 1", len(receipt.Movements))
	}

	// the commit itself must not have bumped the marker
	mid, err := models.GetLastModified(ctx)
	if err != nil || mid != 0 {
		t.Fatalf("marker after commit = %d (err=%v), want 0 until propagated", mid, err)
	}

	if err := workflow.PropagateSync(ctx, receipt); err != nil {
		t.Fatalf("PropagateSync: %v", err)
	}
	after, err := models.GetLastModified(ctx)
	if err != nil {
		t.Fatalf("GetLastModified: %v", err)
	}
	if after != receipt.LastModified.UnixMilli() {
		t.Fatalf("marker = %d, want %d", after, receipt.LastModified.UnixMilli())
	}
}

func TestCommitProduction_ShortageSurfacesWithoutRetryDelay(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	if _, err := models.SaveCatalogItem(ctx, &models.CatalogItem{
		Sku:  "BATT-01",
		Name: "Battery pack 12V",
		Bom:  []models.BOMComponent{{ComponentSku: "CELL-A", QuantityPerUnit: decimal.NewFromInt(4)}},
	}); err != nil {
		t.Fatalf("SaveCatalogItem: %v", err)
	}

	_, _, err := workflow.CommitProduction(ctx, &models.ProductionOrder{
		ProductSku: "BATT-01",
		Quantity:   decimal.NewFromInt(2),
	})
	if err == nil {
		t.Fatalf("expected shortage error")
	}
}
