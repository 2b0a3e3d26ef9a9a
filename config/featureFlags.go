package config

import (
	"os"
	"strings"
)

// StrictInventoryReferences hardens the missing-reference policy:
// a sales dispatch line whose SKU has no inventory record is rejected with a
// reference error instead of auto-provisioning a (negative) record.
//
// Set via env:
// - INVENTORY_STRICT_REFERENCES=true
func StrictInventoryReferences() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("INVENTORY_STRICT_REFERENCES")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
