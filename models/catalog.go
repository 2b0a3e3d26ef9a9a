package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/udyogbooks/inventory_backend/config"
	"github.com/udyogbooks/inventory_backend/utils"
)

// CatalogItem is the item master. SKU is the identity key; inventory and
// movements reference it but never own it.
type CatalogItem struct {
	ID            string          `gorm:"size:36;primary_key" json:"id"`
	Sku           string          `gorm:"size:100;uniqueIndex;not null" json:"sku" validate:"required"`
	Name          string          `gorm:"size:255;not null" json:"name" validate:"required"`
	Description   string          `gorm:"type:text" json:"description"`
	HsnCode       string          `gorm:"size:20" json:"hsn_code"`
	GstPercentage decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"gst_percentage"`
	BasePrice     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"base_price"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"selling_price"`
	UnitOfMeasure string          `gorm:"size:20" json:"unit_of_measure"`
	Category      ItemCategory    `gorm:"size:50;default:Other" json:"category"`
	ItemType      CatalogItemType `gorm:"size:20;default:good" json:"item_type"`
	ImageUrl      string          `gorm:"size:500" json:"image_url"`
	Bom           []BOMComponent  `gorm:"foreignKey:ParentSku;references:Sku" json:"bom"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// BOMComponent is one ordered bill-of-materials row: producing one unit of
// the parent consumes QuantityPerUnit of ComponentSku.
type BOMComponent struct {
	ID              int             `gorm:"primary_key" json:"id"`
	ParentSku       string          `gorm:"size:100;index;not null" json:"parent_sku"`
	Position        int             `gorm:"not null;default:0" json:"position"`
	ComponentSku    string          `gorm:"size:100;index;not null" json:"component_sku" validate:"required"`
	QuantityPerUnit decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity_per_unit"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func GetCatalog(ctx context.Context) ([]*CatalogItem, error) {
	db := config.GetDB()
	var items []*CatalogItem
	if err := db.WithContext(ctx).Preload("Bom", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Order("sku").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// LookupCatalogItem answers "absent" with utils.ErrorRecordNotFound, never a
// panic, so commit paths can apply their documented skip-or-provision policy.
func LookupCatalogItem(tx *gorm.DB, sku string) (*CatalogItem, error) {
	var item CatalogItem
	err := tx.Preload("Bom", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Where("sku = ?", sku).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ResolveBOM returns the ordered component list for producing one unit of
// sku, or an empty slice when the item defines no BOM. Resolution is
// single-level: components with their own BOMs are consumed as-is, not
// exploded.
func ResolveBOM(tx *gorm.DB, sku string) ([]BOMComponent, error) {
	var components []BOMComponent
	if err := tx.Where("parent_sku = ?", sku).Order("position").Find(&components).Error; err != nil {
		return nil, err
	}
	return components, nil
}

func (input *CatalogItem) validate() error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	if strings.TrimSpace(input.Sku) == "" {
		return utils.NewValidationError("sku", "must not be blank")
	}
	for _, c := range input.Bom {
		if c.ComponentSku == input.Sku {
			return utils.NewValidationError("bom", "must not reference the item's own sku")
		}
		if !c.QuantityPerUnit.IsPositive() {
			return utils.NewValidationError("bom", "component quantity per unit must be positive")
		}
	}
	return nil
}

// SaveCatalogItem upserts by SKU, replacing the BOM wholesale (a catalog save
// is a whole-document write, mirroring the editing UI).
func SaveCatalogItem(ctx context.Context, item *CatalogItem) (*CatalogItem, error) {
	db := config.GetDB()

	if err := item.validate(); err != nil {
		return nil, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var existing CatalogItem
	err := tx.Where("sku = ?", item.Sku).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first save, plain create
	case err != nil:
		tx.Rollback()
		return nil, err
	default:
		item.ID = existing.ID
		if err := tx.Where("parent_sku = ?", item.Sku).Delete(&BOMComponent{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Delete(&CatalogItem{}, "sku = ?", item.Sku).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	for i := range item.Bom {
		item.Bom[i].ID = 0
		item.Bom[i].ParentSku = item.Sku
		item.Bom[i].Position = i
	}
	if err := tx.Create(item).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return item, tx.Commit().Error
}

func DeleteCatalogItem(ctx context.Context, sku string) error {
	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Where("parent_sku = ?", sku).Delete(&BOMComponent{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&CatalogItem{}, "sku = ?", sku).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
