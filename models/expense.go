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

// Expense is a purchase-side document (scanned invoice, expense voucher or
// purchase order). Line items carry IsStocked so their inventory effect is
// applied at most once across re-saves.
type Expense struct {
	ID          string            `gorm:"size:36;primary_key" json:"id"`
	VendorName  string            `gorm:"size:255;not null" json:"vendor_name" validate:"required"`
	VendorGst   string            `gorm:"size:20" json:"vendor_gst"`
	VendorAddr  string            `gorm:"size:500" json:"vendor_address"`
	DocDate     time.Time         `json:"doc_date"`
	TotalAmount decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	TaxAmount   decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	Currency    string            `gorm:"size:3;default:INR" json:"currency"`
	LineItems   []ExpenseLineItem `gorm:"foreignKey:ExpenseId" json:"line_items"`
	ImageUrl    string            `gorm:"size:500" json:"image_url"`
	FileName    string            `gorm:"size:255" json:"file_name"`
	DocNumber   string            `gorm:"size:100" json:"doc_number"`
	DocType     ExpenseDocType    `gorm:"size:20;not null" json:"doc_type"`
	Status      PurchaseStatus    `gorm:"size:20;default:draft" json:"status"`
	CreatedBy   string            `gorm:"size:100" json:"created_by"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

type ExpenseLineItem struct {
	ID            int             `gorm:"primary_key" json:"id"`
	ExpenseId     string          `gorm:"size:36;index;not null" json:"expense_id"`
	Position      int             `gorm:"not null;default:0" json:"position"`
	Description   string          `gorm:"size:500;not null" json:"description" validate:"required"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	HsnCode       string          `gorm:"size:20" json:"hsn_code"`
	GstPercentage decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"gst_percentage"`
	Quantity      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	Rate          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate"`
	Category      ItemCategory    `gorm:"size:50" json:"category"`
	Sku           string          `gorm:"size:100;index" json:"sku"`
	UnitOfMeasure string          `gorm:"size:20" json:"unit_of_measure"`
	IsStocked     bool            `gorm:"not null;default:false" json:"is_stocked"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (input *Expense) validate() error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	if !input.DocType.Valid() {
		return utils.NewValidationError("doc_type", "unknown document type")
	}
	if input.Status != "" && !input.Status.Valid() {
		return utils.NewValidationError("status", "unknown status")
	}
	for _, item := range input.LineItems {
		if item.Description == "" {
			return utils.NewValidationError("line_items", "description must not be blank")
		}
	}
	return nil
}

func GetExpenses(ctx context.Context) ([]*Expense, error) {
	db := config.GetDB()
	var expenses []*Expense
	if err := db.WithContext(ctx).Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func GetExpense(ctx context.Context, id string) (*Expense, error) {
	db := config.GetDB()
	var expense Expense
	err := db.WithContext(ctx).Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Where("id = ?", id).First(&expense).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// SaveExpense commits a purchase-side document: stocks every eligible line
// (movement + ledger delta), marks those lines stocked, and persists the
// document — one transaction, all or nothing. The caller's value is not
// mutated; the returned copy reflects the applied state.
func SaveExpense(ctx context.Context, input *Expense) (*Expense, *CommitReceipt, error) {
	db := config.GetDB()

	if err := input.validate(); err != nil {
		return nil, nil, err
	}

	expense := input.clone()
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	if expense.Status == "" {
		expense.Status = PurchaseStatusDraft
	}

	release, err := utils.StockLock(ctx, "stock:documents", "expense.go", "SaveExpense")
	if err != nil {
		return nil, nil, err
	}
	defer release()

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	movements, err := ApplyExpenseStock(tx, expense)
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := expense.persist(tx); err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}
	return expense, &CommitReceipt{Movements: movements, LastModified: time.Now()}, nil
}

// DeleteExpense removes the document only. Movements already recorded stay
// in the ledger; reversing stock requires compensating entries.
func DeleteExpense(ctx context.Context, id string) error {
	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Where("expense_id = ?", id).Delete(&ExpenseLineItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&Expense{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func (e *Expense) clone() *Expense {
	out := *e
	out.LineItems = make([]ExpenseLineItem, len(e.LineItems))
	copy(out.LineItems, e.LineItems)
	return &out
}

// persist replaces the stored document wholesale (document saves are
// whole-document writes). CreatedAt of an existing document is preserved.
func (e *Expense) persist(tx *gorm.DB) error {
	var existing Expense
	err := tx.Where("id = ?", e.ID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first save
	case err != nil:
		return err
	default:
		e.CreatedAt = existing.CreatedAt
		if err := tx.Where("expense_id = ?", e.ID).Delete(&ExpenseLineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Expense{}, "id = ?", e.ID).Error; err != nil {
			return err
		}
	}
	for i := range e.LineItems {
		e.LineItems[i].ID = 0
		e.LineItems[i].ExpenseId = e.ID
		e.LineItems[i].Position = i
	}
	return tx.Create(e).Error
}
