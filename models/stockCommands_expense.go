package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ApplyExpenseStock records purchase receipts for every eligible line of a
// purchase-side document and applies the deltas to the inventory ledger,
// inside the caller's transaction.
//
// Eligible: the document state maps to a receipt effect (invoice, or marked
// received), the line has a SKU, and the line is not already stocked.
// Scanned lines frequently omit quantity; a zero quantity counts as one unit
// (original scanner behavior). Negative quantities never stock.
//
// Lines are marked IsStocked on the in-memory document BEFORE it is
// persisted, so the stored copy reflects the applied state and a later
// re-save is a no-op for those lines.
func ApplyExpenseStock(tx *gorm.DB, expense *Expense) ([]*StockMovement, error) {
	effect, eligible := ExpenseMovementEffect(expense.DocType, expense.Status)
	if !eligible {
		return nil, nil
	}

	var movements []*StockMovement
	for i := range expense.LineItems {
		item := &expense.LineItems[i]
		if item.Sku == "" || item.IsStocked {
			continue
		}
		qty := item.Quantity
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		if qty.IsNegative() {
			continue
		}

		delta := qty.Mul(decimal.NewFromInt(int64(effect.Sign)))
		movement, err := RecordStockMovement(tx, item.Sku, effect.Type, delta, expense.ID, i, "")
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
