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

// SalesDocument covers invoices, credit notes, quotations, proformas and
// delivery challans. Stock effects fire only when the document is issued;
// the movement policy table decides kind and sign per document type.
type SalesDocument struct {
	ID              string          `gorm:"size:36;primary_key" json:"id"`
	DocNumber       string          `gorm:"size:100;index" json:"doc_number"`
	DocType         SalesDocType    `gorm:"size:20;not null" json:"doc_type"`
	CustomerName    string          `gorm:"size:255;not null" json:"customer_name" validate:"required"`
	CustomerGst     string          `gorm:"size:20" json:"customer_gst"`
	CustomerAddr    string          `gorm:"size:500" json:"customer_address"`
	CustomerState   string          `gorm:"size:100" json:"customer_state"`
	ShippingAddress string          `gorm:"size:500" json:"shipping_address"`
	PoNumber        string          `gorm:"size:100" json:"po_number"`
	PoDate          *time.Time      `json:"po_date"`
	DocDate         time.Time       `json:"doc_date"`
	LineItems       []SalesLineItem `gorm:"foreignKey:SalesDocumentId" json:"line_items"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	AmountPaid      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount_paid"`
	BalanceAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"balance_amount"`
	Notes           string          `gorm:"type:text" json:"notes"`
	Status          SalesDocStatus  `gorm:"size:20;default:draft" json:"status"`
	CreatedBy       string          `gorm:"size:100" json:"created_by"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type SalesLineItem struct {
	ID              int             `gorm:"primary_key" json:"id"`
	SalesDocumentId string          `gorm:"size:36;index;not null" json:"sales_document_id"`
	Position        int             `gorm:"not null;default:0" json:"position"`
	Description     string          `gorm:"size:500;not null" json:"description" validate:"required"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	HsnCode         string          `gorm:"size:20" json:"hsn_code"`
	GstPercentage   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"gst_percentage"`
	Quantity        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	Rate            decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"rate"`
	Category        ItemCategory    `gorm:"size:50" json:"category"`
	Sku             string          `gorm:"size:100;index" json:"sku"`
	UnitOfMeasure   string          `gorm:"size:20" json:"unit_of_measure"`
	IsStocked       bool            `gorm:"not null;default:false" json:"is_stocked"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (input *SalesDocument) validate() error {
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

func GetSalesDocuments(ctx context.Context) ([]*SalesDocument, error) {
	db := config.GetDB()
	var docs []*SalesDocument
	if err := db.WithContext(ctx).Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func GetSalesDocument(ctx context.Context, id string) (*SalesDocument, error) {
	db := config.GetDB()
	var doc SalesDocument
	err := db.WithContext(ctx).Preload("LineItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveSalesDocument commits a sales document. Issued documents dispatch (or
// return, for credit notes) stock for every eligible line; drafts and
// quotations persist with no ledger effect. One transaction, all or nothing;
// the caller's value is not mutated.
func SaveSalesDocument(ctx context.Context, input *SalesDocument) (*SalesDocument, *CommitReceipt, error) {
	db := config.GetDB()

	if err := input.validate(); err != nil {
		return nil, nil, err
	}

	doc := input.clone()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.Status == "" {
		doc.Status = SalesDocStatusDraft
	}

	release, err := utils.StockLock(ctx, "stock:documents", "salesDocument.go", "SaveSalesDocument")
	if err != nil {
		return nil, nil, err
	}
	defer release()

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}

	movements, err := ApplySalesDocumentStock(tx, doc)
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := doc.persist(tx); err != nil {
		tx.Rollback()
		return nil, nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}
	return doc, &CommitReceipt{Movements: movements, LastModified: time.Now()}, nil
}

// DeleteSalesDocument removes the document only; recorded movements stay.
func DeleteSalesDocument(ctx context.Context, id string) error {
	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Where("sales_document_id = ?", id).Delete(&SalesLineItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&SalesDocument{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func (d *SalesDocument) clone() *SalesDocument {
	out := *d
	out.LineItems = make([]SalesLineItem, len(d.LineItems))
	copy(out.LineItems, d.LineItems)
	return &out
}

func (d *SalesDocument) persist(tx *gorm.DB) error {
	var existing SalesDocument
	err := tx.Where("id = ?", d.ID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first save
	case err != nil:
		return err
	default:
		d.CreatedAt = existing.CreatedAt
		if err := tx.Where("sales_document_id = ?", d.ID).Delete(&SalesLineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&SalesDocument{}, "id = ?", d.ID).Error; err != nil {
			return err
		}
	}
	for i := range d.LineItems {
		d.LineItems[i].ID = 0
		d.LineItems[i].SalesDocumentId = d.ID
		d.LineItems[i].Position = i
	}
	return tx.Create(d).Error
}
