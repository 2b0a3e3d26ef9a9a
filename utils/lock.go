package utils

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"

	"github.com/udyogbooks/inventory_backend/config"
)

var (
	localMu    sync.Mutex
	localLocks = map[string]*sync.Mutex{}
)

func localLock(name string) *sync.Mutex {
	localMu.Lock()
	defer localMu.Unlock()
	mu := localLocks[name]
	if mu == nil {
		mu = &sync.Mutex{}
		localLocks[name] = mu
	}
	return mu
}

// StockLock serializes stock posting for a scope (usually "stock:<docKind>"
// or a SKU) across processes when Redis is configured, and within the process
// otherwise. The returned release function must always be called.
func StockLock(ctx context.Context, scope string, moduleName string, functionName string) (release func(), err error) {
	locker := config.GetRedisLock()
	if locker == nil {
		mu := localLock(scope)
		mu.Lock()
		return mu.Unlock, nil
	}

	logger := config.GetLogger()
	lock, err := locker.Obtain(ctx, scope, 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		config.LogError(logger, moduleName, functionName, "could not obtain stock lock", scope, err)
		return nil, errors.New("could not obtain stock lock")
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "error obtaining stock lock", scope, err)
		return nil, err
	}
	return func() { _ = lock.Release(ctx) }, nil
}
