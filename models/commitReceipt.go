package models

import "time"

// CommitReceipt reports what a successful document commit did. The commit
// protocol does not touch the shared sync marker itself; callers that feed
// external sync/export collaborators propagate LastModified explicitly
// (see BumpLastModified).
type CommitReceipt struct {
	Movements    []*StockMovement `json:"movements"`
	LastModified time.Time        `json:"last_modified"`
}
