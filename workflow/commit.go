package workflow

import (
	"context"
	"time"

	"github.com/udyogbooks/inventory_backend/config"
	"github.com/udyogbooks/inventory_backend/models"
	"github.com/udyogbooks/inventory_backend/utils"
)

const (
	maxCommitAttempts = 3
	initialBackoff    = 50 * time.Millisecond
)

// retryCommit reruns a whole document commit on store-level write conflicts
// (deadlock, lock wait timeout), up to maxCommitAttempts with exponential
// backoff. Conflicted commits rolled back completely, so rerunning the whole
// unit is safe; there is never a partial retry of a subset of movements.
func retryCommit[T any](ctx context.Context, name string, fn func() (T, *models.CommitReceipt, error)) (T, *models.CommitReceipt, error) {
	logger := config.GetLogger()
	backoff := initialBackoff
	var zero T
	for attempt := 1; ; attempt++ {
		result, receipt, err := fn()
		if err == nil {
			return result, receipt, nil
		}
		if !utils.IsTransactionConflict(err) || attempt >= maxCommitAttempts {
			return zero, nil, err
		}
		config.LogError(logger, "workflow", name, "commit conflict, retrying", attempt, err)
		select {
		case <-ctx.Done():
			return zero, nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// CommitExpense saves a purchase-side document with conflict retry.
func CommitExpense(ctx context.Context, expense *models.Expense) (*models.Expense, *models.CommitReceipt, error) {
	return retryCommit(ctx, "CommitExpense", func() (*models.Expense, *models.CommitReceipt, error) {
		return models.SaveExpense(ctx, expense)
	})
}

// CommitSalesDocument saves a sales document with conflict retry.
func CommitSalesDocument(ctx context.Context, doc *models.SalesDocument) (*models.SalesDocument, *models.CommitReceipt, error) {
	return retryCommit(ctx, "CommitSalesDocument", func() (*models.SalesDocument, *models.CommitReceipt, error) {
		return models.SaveSalesDocument(ctx, doc)
	})
}

// CommitProduction completes a manufacturing run with conflict retry.
// Shortage rejections are business failures, not conflicts; they surface
// immediately without retry.
func CommitProduction(ctx context.Context, order *models.ProductionOrder) (*models.ProductionOrder, *models.CommitReceipt, error) {
	return retryCommit(ctx, "CommitProduction", func() (*models.ProductionOrder, *models.CommitReceipt, error) {
		return models.CompleteProduction(ctx, order)
	})
}

// CommitAdjustment applies a manual stock adjustment with conflict retry.
func CommitAdjustment(ctx context.Context, adjustment *models.NewStockAdjustment) (*models.InventoryItem, *models.CommitReceipt, error) {
	return retryCommit(ctx, "CommitAdjustment", func() (*models.InventoryItem, *models.CommitReceipt, error) {
		return models.AdjustInventory(ctx, adjustment)
	})
}

// PropagateSync pushes a commit receipt's timestamp to the shared sync
// marker consumed by export collaborators. Deliberately separate from the
// commit itself: callers decide whether a commit is sync-worthy.
func PropagateSync(ctx context.Context, receipt *models.CommitReceipt) error {
	if receipt == nil {
		return nil
	}
	return models.BumpLastModified(ctx, receipt.LastModified)
}
