package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/udyogbooks/inventory_backend/config"
	"github.com/udyogbooks/inventory_backend/utils"
)

const defaultMinThreshold = 5

// InventoryItem is the current-state view of one SKU. StockLevel is the
// algebraic sum of all movements for the SKU; it is maintained incrementally
// by ApplyInventoryDelta inside the same transaction that writes the
// movement, never recomputed.
//
// StockLevel may go negative: consumption is not blocked outside the
// manufacturing shortage precheck.
type InventoryItem struct {
	ID           string          `gorm:"size:36;primary_key" json:"id"`
	Sku          string          `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	Name         string          `gorm:"size:255" json:"name"`
	Category     ItemCategory    `gorm:"size:50;default:Other" json:"category"`
	StockLevel   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"stock_level"`
	Unit         string          `gorm:"size:20;default:Units" json:"unit"`
	MinThreshold decimal.Decimal `gorm:"type:decimal(20,4);default:5" json:"min_threshold"`
	LastUpdated  time.Time       `json:"last_updated"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetInventory(ctx context.Context) ([]*InventoryItem, error) {
	db := config.GetDB()
	var items []*InventoryItem
	if err := db.WithContext(ctx).Order("sku").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func GetInventoryItem(ctx context.Context, sku string) (*InventoryItem, error) {
	db := config.GetDB()
	var item InventoryItem
	err := db.WithContext(ctx).Where("sku = ?", sku).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// LowStockItems lists SKUs at or below their minimum threshold.
func LowStockItems(ctx context.Context) ([]*InventoryItem, error) {
	db := config.GetDB()
	var items []*InventoryItem
	if err := db.WithContext(ctx).
		Where("stock_level <= min_threshold").
		Order("sku").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SaveInventoryItem upserts a record directly, bypassing the movement log.
// Reserved for catalog management fixing display fields (name, category,
// unit, threshold); stock levels must flow through the commit protocol.
func SaveInventoryItem(ctx context.Context, item *InventoryItem) (*InventoryItem, error) {
	db := config.GetDB()
	if strings.TrimSpace(item.Sku) == "" {
		return nil, utils.NewValidationError("sku", "must not be blank")
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.LastUpdated = time.Now()
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sku"}},
		UpdateAll: true,
	}).Create(item).Error
	if err != nil {
		return nil, err
	}
	return item, nil
}

// lockedInventoryBySku reads an inventory row FOR UPDATE inside tx so the
// read-modify-write below cannot lose a concurrent delta. sqlite has no
// row locks; its single-writer model covers the same contract in tests.
func lockedInventoryBySku(tx *gorm.DB, sku string) (*InventoryItem, error) {
	q := tx
	if tx.Dialector.Name() == "mysql" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var item InventoryItem
	err := q.Where("sku = ?", sku).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ApplyInventoryDelta adds a signed quantity to a SKU's stock level inside
// the caller's transaction. When the record is absent it is created with
// StockLevel = delta: the first movement touching a SKU provisions its
// inventory record (first-touch provisioning, a deliberate policy).
//
// Must run in the same transaction as the movement insert for the SKU.
func ApplyInventoryDelta(tx *gorm.DB, sku string, delta decimal.Decimal, name string, category ItemCategory) (*InventoryItem, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, utils.NewValidationError("sku", "must not be blank")
	}

	item, err := lockedInventoryBySku(tx, sku)
	if errors.Is(err, utils.ErrorRecordNotFound) {
		if category == "" {
			category = ItemCategoryOther
		}
		created := &InventoryItem{
			ID:           uuid.NewString(),
			Sku:          sku,
			Name:         name,
			Category:     category,
			StockLevel:   delta,
			Unit:         "Units",
			MinThreshold: decimal.NewFromInt(defaultMinThreshold),
			LastUpdated:  time.Now(),
		}
		if err := tx.Create(created).Error; err != nil {
			return nil, err
		}
		return created, nil
	}
	if err != nil {
		return nil, err
	}

	item.StockLevel = item.StockLevel.Add(delta)
	item.LastUpdated = time.Now()
	if err := tx.Model(&InventoryItem{}).Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"stock_level":  item.StockLevel,
			"last_updated": item.LastUpdated,
		}).Error; err != nil {
		return nil, err
	}
	return item, nil
}
