package models_test

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/udyogbooks/inventory_backend/config"
	"github.com/udyogbooks/inventory_backend/models"
	"github.com/udyogbooks/inventory_backend/workflow"
)

// Concurrent commits against the SAME SKU must serialize so the final level
// is the sum of all deltas. The sqlite tests cover the protocol with a
// single writer; this exercises real row locking under MySQL.
//
// Requires DB_USER/DB_PASSWORD/DB_HOST/DB_PORT/DB_NAME pointing at a
// disposable MySQL instance.
func TestConcurrentCommits_MySQLRowLocking(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires MySQL)")
	}

	config.ConnectDatabaseWithRetry()
	models.MigrateTable()
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = workflow.CommitAdjustment(ctx, &models.NewStockAdjustment{
				Sku: "CONC-1", Quantity: dec(1), Name: "Contended item",
			})
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
	}

	if got := mustStockLevel(t, ctx, "CONC-1"); !got.Equal(dec(workers)) {
		t.Fatalf("stock level = %s, want %d", got, workers)
	}
	if moves := movementsFor(t, ctx, "CONC-1"); len(moves) != workers {
		t.Fatalf("movements = %d, want %d", len(moves), workers)
	}
}
