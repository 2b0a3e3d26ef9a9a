package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/udyogbooks/inventory_backend/config"
	"github.com/udyogbooks/inventory_backend/utils"
)

// ProductionOrder records one completed manufacturing run: consume the BOM
// ingredients of ProductSku, output Quantity units of it.
type ProductionOrder struct {
	ID         string           `gorm:"size:36;primary_key" json:"id"`
	ProductSku string           `gorm:"size:100;index;not null" json:"product_sku" validate:"required"`
	Quantity   decimal.Decimal  `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Date       time.Time        `json:"date"`
	Status     ProductionStatus `gorm:"size:20;default:completed" json:"status"`
	Notes      string           `gorm:"type:text" json:"notes"`
	CreatedBy  string           `gorm:"size:100" json:"created_by"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetProductionHistory(ctx context.Context) ([]*ProductionOrder, error) {
	db := config.GetDB()
	var orders []*ProductionOrder
	if err := db.WithContext(ctx).Order("date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CompleteProduction commits a manufacturing run: shortage precheck over
// every BOM ingredient, then consumption movements, the output movement,
// ledger deltas and the order itself in one transaction.
//
// The precheck is the one place a business constraint (not just a technical
// failure) rejects a commit: if ANY ingredient is short, the run fails with
// a ShortageError listing every short ingredient, and nothing is written.
func CompleteProduction(ctx context.Context, input *ProductionOrder) (*ProductionOrder, *CommitReceipt, error) {
	db := config.GetDB()

	if err := utils.ValidateStruct(input); err != nil {
		return nil, nil, err
	}
	if !input.Quantity.IsPositive() {
		return nil, nil, utils.NewValidationError("quantity", "must be positive")
	}

	order := *input
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Status == "" {
		order.Status = ProductionStatusCompleted
	}
	if order.Date.IsZero() {
		order.Date = time.Now()
	}

	release, err := utils.StockLock(ctx, "stock:documents", "productionOrder.go", "CompleteProduction")
	if err != nil {
		return nil, nil, err
	}
	defer release()

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	catalogItem, err := LookupCatalogItem(tx, order.ProductSku)
	if errors.Is(err, utils.ErrorRecordNotFound) {
		tx.Rollback()
		return nil, nil, utils.NewReferenceError(order.ProductSku, "not in catalog")
	}
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if len(catalogItem.Bom) == 0 {
		tx.Rollback()
		return nil, nil, utils.NewValidationError("bom", "no bill of materials defined for "+order.ProductSku)
	}

	movements, err := ApplyProductionStock(tx, &order, catalogItem)
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := order.persist(tx); err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}
	return &order, &CommitReceipt{Movements: movements, LastModified: time.Now()}, nil
}

func (o *ProductionOrder) persist(tx *gorm.DB) error {
	var existing ProductionOrder
	err := tx.Where("id = ?", o.ID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tx.Create(o).Error
	case err != nil:
		return err
	}
	o.CreatedAt = existing.CreatedAt
	if err := tx.Delete(&ProductionOrder{}, "id = ?", o.ID).Error; err != nil {
		return err
	}
	return tx.Create(o).Error
}

func runRef(id string) string {
	if len(id) > 6 {
		return id[len(id)-6:]
	}
	return id
}
