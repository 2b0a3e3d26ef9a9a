package models

// Movement policy: the closed mapping from a document state to the ledger
// effect of its line items. Replaces string-comparison branching so the sign
// table is executable and testable in one place.
//
//	purchase receipt          => +qty   (Purchase_GRN)
//	sales dispatch (issued)   => -qty   (Sales_Dispatch)
//	sales return / credit note=> +qty   (Sale_Return)
//	manufacturing consumption => -(BOM per-unit x run qty) per ingredient
//	manufacturing output      => +run qty on the output SKU
//	manual adjustment         => caller-supplied signed qty

// MovementEffect is one resolved ledger effect: the movement kind and the
// sign applied to the line quantity.
type MovementEffect struct {
	Type MovementType
	Sign int
}

// salesDispatchPolicy maps a sales document type to its ledger effect when
// the document is issued. Types absent from the table have no stock effect.
var salesDispatchPolicy = map[SalesDocType]MovementEffect{
	SalesDocTypeInvoice:         {Type: MovementTypeSalesDispatch, Sign: -1},
	SalesDocTypeDeliveryChallan: {Type: MovementTypeSalesDispatch, Sign: -1},
	SalesDocTypeProforma:        {Type: MovementTypeSalesDispatch, Sign: -1},
	SalesDocTypeCreditNote:      {Type: MovementTypeSaleReturn, Sign: 1},
}

// SalesMovementEffect resolves the ledger effect for a sales document state.
// ok is false when the state carries no stock effect (draft, cancelled,
// quotation).
func SalesMovementEffect(docType SalesDocType, status SalesDocStatus) (MovementEffect, bool) {
	if status != SalesDocStatusIssued {
		return MovementEffect{}, false
	}
	effect, ok := salesDispatchPolicy[docType]
	return effect, ok
}

// ExpenseMovementEffect resolves the ledger effect for a purchase-side
// document state. Invoices always stock on save; expenses and purchase
// orders stock once marked received.
func ExpenseMovementEffect(docType ExpenseDocType, status PurchaseStatus) (MovementEffect, bool) {
	if docType == ExpenseDocTypeInvoice || status == PurchaseStatusReceived {
		return MovementEffect{Type: MovementTypePurchaseReceipt, Sign: 1}, true
	}
	return MovementEffect{}, false
}
