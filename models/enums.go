package models

// MovementType tags every stock ledger entry with the business event that
// produced it. The set is closed; adding a member requires a matching entry
// in the movement policy tables.
type MovementType string

const (
	MovementTypePurchaseReceipt          MovementType = "Purchase_GRN"
	MovementTypeSalesDispatch            MovementType = "Sales_Dispatch"
	MovementTypeSaleReturn               MovementType = "Sale_Return"
	MovementTypeManualAdjustment         MovementType = "Manual_Adjustment"
	MovementTypeManufacturingConsumption MovementType = "Manufacturing_Consumption"
	MovementTypeManufacturingOutput      MovementType = "Manufacturing_Output"
)

// ExpenseDocType discriminates purchase-side documents.
type ExpenseDocType string

const (
	ExpenseDocTypeInvoice       ExpenseDocType = "invoice"
	ExpenseDocTypeExpense       ExpenseDocType = "expense"
	ExpenseDocTypePurchaseOrder ExpenseDocType = "purchase_order"
)

func (t ExpenseDocType) Valid() bool {
	switch t {
	case ExpenseDocTypeInvoice, ExpenseDocTypeExpense, ExpenseDocTypePurchaseOrder:
		return true
	}
	return false
}

type PurchaseStatus string

const (
	PurchaseStatusDraft     PurchaseStatus = "draft"
	PurchaseStatusOrdered   PurchaseStatus = "ordered"
	PurchaseStatusReceived  PurchaseStatus = "received"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

func (s PurchaseStatus) Valid() bool {
	switch s {
	case PurchaseStatusDraft, PurchaseStatusOrdered, PurchaseStatusReceived, PurchaseStatusCancelled:
		return true
	}
	return false
}

type SalesDocType string

const (
	SalesDocTypeInvoice         SalesDocType = "sales_invoice"
	SalesDocTypeCreditNote      SalesDocType = "credit_note"
	SalesDocTypeQuotation       SalesDocType = "quotation"
	SalesDocTypeProforma        SalesDocType = "proforma"
	SalesDocTypeDeliveryChallan SalesDocType = "delivery_challan"
)

func (t SalesDocType) Valid() bool {
	switch t {
	case SalesDocTypeInvoice, SalesDocTypeCreditNote, SalesDocTypeQuotation,
		SalesDocTypeProforma, SalesDocTypeDeliveryChallan:
		return true
	}
	return false
}

type SalesDocStatus string

const (
	SalesDocStatusDraft     SalesDocStatus = "draft"
	SalesDocStatusIssued    SalesDocStatus = "issued"
	SalesDocStatusCancelled SalesDocStatus = "cancelled"
)

func (s SalesDocStatus) Valid() bool {
	switch s {
	case SalesDocStatusDraft, SalesDocStatusIssued, SalesDocStatusCancelled:
		return true
	}
	return false
}

type ProductionStatus string

const (
	ProductionStatusCompleted ProductionStatus = "completed"
	ProductionStatusCancelled ProductionStatus = "cancelled"
)

type ItemCategory string

const (
	ItemCategoryParts          ItemCategory = "Parts"
	ItemCategoryProduct        ItemCategory = "Product"
	ItemCategoryRawMaterials   ItemCategory = "Raw Materials"
	ItemCategoryConsumables    ItemCategory = "Consumables"
	ItemCategoryService        ItemCategory = "Service"
	ItemCategoryOther          ItemCategory = "Other"
	ItemCategoryPurchase       ItemCategory = "Purchase"
	ItemCategoryCourier        ItemCategory = "Courier"
	ItemCategoryTransportation ItemCategory = "Transportation"
	ItemCategoryPorter         ItemCategory = "Porter"
)

type CatalogItemType string

const (
	CatalogItemTypeGood    CatalogItemType = "good"
	CatalogItemTypeService CatalogItemType = "service"
)
