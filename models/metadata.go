package models

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/udyogbooks/inventory_backend/config"
)

const syncMarkerKey = "last_modified"

// SyncMarker is the contract with external sync/export collaborators: they
// poll last_modified to decide whether anything changed. Commits do not bump
// it implicitly; callers propagate CommitReceipt.LastModified when they want
// collaborators notified (see BumpLastModified).
type SyncMarker struct {
	MarkerKey string    `gorm:"size:50;primary_key" json:"key"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetLastModified returns the marker as unix milliseconds, zero when unset.
func GetLastModified(ctx context.Context) (int64, error) {
	db := config.GetDB()
	var marker SyncMarker
	err := db.WithContext(ctx).Where("marker_key = ?", syncMarkerKey).First(&marker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return marker.Value, nil
}

// BumpLastModified advances the marker. Last-write-wins is fine: the marker
// only signals "something changed since t".
func BumpLastModified(ctx context.Context, t time.Time) error {
	db := config.GetDB()
	marker := SyncMarker{MarkerKey: syncMarkerKey, Value: t.UnixMilli()}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "marker_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&marker).Error
}
