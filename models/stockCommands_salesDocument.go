package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/udyogbooks/inventory_backend/config"
	"github.com/udyogbooks/inventory_backend/utils"
)

// ApplySalesDocumentStock records dispatch (or return) movements for every
// eligible line of a sales document and applies the deltas to the inventory
// ledger, inside the caller's transaction.
//
// Eligible: the document state maps to an effect in the movement policy
// table (issued invoice/challan/proforma dispatches, issued credit note
// returns; quotations and drafts never stock), the line has a SKU and a
// positive quantity, and the line is not already stocked.
//
// A dispatch line whose SKU has no inventory record auto-provisions one with
// a negative level, keeping the ledger equal to the movement sum. Under
// INVENTORY_STRICT_REFERENCES that case is a ReferenceError instead.
func ApplySalesDocumentStock(tx *gorm.DB, doc *SalesDocument) ([]*StockMovement, error) {
	effect, eligible := SalesMovementEffect(doc.DocType, doc.Status)
	if !eligible {
		return nil, nil
	}

	strict := config.StrictInventoryReferences()

	var movements []*StockMovement
	for i := range doc.LineItems {
		item := &doc.LineItems[i]
		if item.Sku == "" || item.IsStocked || !item.Quantity.IsPositive() {
			continue
		}

		if strict && effect.Sign < 0 {
			if _, err := lockedInventoryBySku(tx, item.Sku); errors.Is(err, utils.ErrorRecordNotFound) {
				return nil, utils.NewReferenceError(item.Sku, "no inventory record for dispatch")
			} else if err != nil {
				return nil, err
			}
		}

		delta := item.Quantity.Mul(decimal.NewFromInt(int64(effect.Sign)))
		movement, err := RecordStockMovement(tx, item.Sku, effect.Type, delta, doc.ID, i, "")
		if err != nil {
			return nil, err
		}
		if _, err := ApplyInventoryDelta(tx, item.Sku, delta, item.Description, item.Category); err != nil {
			return nil, err
		}
		item.IsStocked = true
		movements = append(movements, movement)
	}
	return movements, nil
}
