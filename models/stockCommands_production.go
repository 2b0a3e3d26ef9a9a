package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/udyogbooks/inventory_backend/utils"
)

// ApplyProductionStock applies a completed manufacturing run inside the
// caller's transaction: shortage precheck over all ingredients, then one
// consumption movement per ingredient and one output movement, each paired
// with its ledger delta.
//
// IMPORTANT: the precheck runs before ANY write. If it fails, the returned
// ShortageError lists every short ingredient and the transaction has
// recorded nothing.
func ApplyProductionStock(tx *gorm.DB, order *ProductionOrder, catalogItem *CatalogItem) ([]*StockMovement, error) {
	var shortages []utils.ShortageLine
	for _, component := range catalogItem.Bom {
		required := component.QuantityPerUnit.Mul(order.Quantity)
		available, err := availableStock(tx, component.ComponentSku)
		if err != nil {
			return nil, err
		}
		if available.LessThan(required) {
			shortages = append(shortages, utils.ShortageLine{
				Sku:       component.ComponentSku,
				Required:  required,
				Available: available,
			})
		}
	}
	if len(shortages) > 0 {
		return nil, &utils.ShortageError{ProductSku: order.ProductSku, Shortages: shortages}
	}

	var movements []*StockMovement
	for i, component := range catalogItem.Bom {
		consumed := component.QuantityPerUnit.Mul(order.Quantity).Neg()
		note := fmt.Sprintf("Consumption for %s units of %s", order.Quantity.String(), order.ProductSku)
		movement, err := RecordStockMovement(tx, component.ComponentSku, MovementTypeManufacturingConsumption, consumed, order.ID, i, note)
		if err != nil {
			return nil, err
		}
		if _, err := ApplyInventoryDelta(tx, component.ComponentSku, consumed, "", ""); err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}

	outputNote := fmt.Sprintf("Output run #%s", runRef(order.ID))
	output, err := RecordStockMovement(tx, order.ProductSku, MovementTypeManufacturingOutput, order.Quantity, order.ID, len(catalogItem.Bom), outputNote)
	if err != nil {
		return nil, err
	}
	if _, err := ApplyInventoryDelta(tx, order.ProductSku, order.Quantity, catalogItem.Name, catalogItem.Category); err != nil {
		return nil, err
	}
	movements = append(movements, output)
	return movements, nil
}

// availableStock reads the current ledger level for a SKU inside tx,
// locking the row so the precheck and the consumption write see the same
// level. A missing record counts as zero on hand.
func availableStock(tx *gorm.DB, sku string) (decimal.Decimal, error) {
	item, err := lockedInventoryBySku(tx, sku)
	if errors.Is(err, utils.ErrorRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return item.StockLevel, nil
}
