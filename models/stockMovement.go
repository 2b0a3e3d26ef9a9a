package models

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/udyogbooks/inventory_backend/config"
	"github.com/udyogbooks/inventory_backend/utils"
)

// StockMovement is one append-only ledger entry. Rows are never updated or
// deleted by normal operation; corrections are compensating entries with the
// opposite sign. The signed sum per SKU reconstructs stock history.
type StockMovement struct {
	ID            string          `gorm:"size:36;primary_key" json:"id"`
	Sku           string          `gorm:"size:100;index;not null" json:"sku"`
	Type          MovementType    `gorm:"size:30;not null" json:"type"`
	Quantity      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	ReferenceId   string          `gorm:"size:100;index;not null" json:"reference_id"`
	ReferenceLine int             `gorm:"default:0" json:"reference_line"`
	Date          time.Time       `gorm:"index;not null" json:"date"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// RecordStockMovement appends one ledger entry inside the caller's
// transaction. There is no update or delete counterpart.
func RecordStockMovement(tx *gorm.DB, sku string, movementType MovementType, quantity decimal.Decimal, referenceId string, referenceLine int, notes string) (*StockMovement, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, utils.NewValidationError("sku", "must not be blank")
	}
	if referenceId == "" {
		return nil, utils.NewValidationError("reference_id", "must not be blank")
	}
	movement := &StockMovement{
		ID:            uuid.NewString(),
		Sku:           sku,
		Type:          movementType,
		Quantity:      quantity,
		ReferenceId:   referenceId,
		ReferenceLine: referenceLine,
		Date:          time.Now(),
		Notes:         notes,
	}
	if err := tx.Create(movement).Error; err != nil {
		return nil, err
	}
	return movement, nil
}

// GetStockMovements lists movements newest first, optionally filtered by SKU.
func GetStockMovements(ctx context.Context, sku string) ([]*StockMovement, error) {
	db := config.GetDB()
	q := db.WithContext(ctx).Model(&StockMovement{})
	if sku != "" {
		q = q.Where("sku = ?", sku)
	}
	var movements []*StockMovement
	if err := q.Order("date DESC, created_at DESC").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// MovementSum returns the signed sum of all movements for a SKU. Audit
// helper: for a consistent ledger this equals InventoryItem.StockLevel.
func MovementSum(ctx context.Context, sku string) (decimal.Decimal, error) {
	db := config.GetDB()
	var movements []*StockMovement
	if err := db.WithContext(ctx).Where("sku = ?", sku).Find(&movements).Error; err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, m := range movements {
		sum = sum.Add(m.Quantity)
	}
	return sum, nil
}
