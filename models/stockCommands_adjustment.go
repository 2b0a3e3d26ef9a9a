package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/udyogbooks/inventory_backend/config"
	"github.com/udyogbooks/inventory_backend/utils"
)

// ManualAdjustmentReference tags adjustment movements that have no owning
// document.
const ManualAdjustmentReference = "MANUAL"

// NewStockAdjustment is the input for a manual stock correction. Quantity is
// signed: positive adds stock, negative removes it. Name and Category seed
// the inventory record when the SKU is touched for the first time.
type NewStockAdjustment struct {
	Sku      string          `json:"sku" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Name     string          `json:"name"`
	Category ItemCategory    `json:"category"`
	Notes    string          `json:"notes"`
}

// AdjustInventory commits one manual adjustment: a movement plus the ledger
// delta, in one transaction. Adjustments may drive stock negative; that is
// the operator's call to make.
func AdjustInventory(ctx context.Context, input *NewStockAdjustment) (*InventoryItem, *CommitReceipt, error) {
	db := config.GetDB()

	if err := utils.ValidateStruct(input); err != nil {
		return nil, nil, err
	}
	if input.Quantity.IsZero() {
		return nil, nil, utils.NewValidationError("quantity", "must not be zero")
	}

	release, err := utils.StockLock(ctx, "stock:documents", "stockCommands_adjustment.go", "AdjustInventory")
	if err != nil {
		return nil, nil, err
	}
	defer release()

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	notes := input.Notes
	if notes == "" {
		notes = "Manual stock adjustment"
	}
	movement, err := RecordStockMovement(tx, input.Sku, MovementTypeManualAdjustment, input.Quantity, ManualAdjustmentReference, 0, notes)
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	item, err := ApplyInventoryDelta(tx, input.Sku, input.Quantity, input.Name, input.Category)
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}
	return item, &CommitReceipt{Movements: []*StockMovement{movement}, LastModified: time.Now()}, nil
}
