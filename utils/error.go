package utils

import (
	"errors"
	"fmt"
	"strings"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

var ErrorRecordNotFound = errors.New("record not found")

// ValidationError rejects a document before any transaction starts.
// Nothing has been persisted when one of these surfaces.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ReferenceError marks a line item whose SKU cannot be resolved against the
// catalog or inventory under the strict-reference policy.
type ReferenceError struct {
	Sku     string
	Message string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("sku %q: %s", e.Sku, e.Message)
}

func NewReferenceError(sku, message string) error {
	return &ReferenceError{Sku: sku, Message: message}
}

func IsReferenceError(err error) bool {
	var re *ReferenceError
	return errors.As(err, &re)
}

// ShortageLine reports one ingredient that cannot cover a production run.
type ShortageLine struct {
	Sku       string          `json:"sku"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
}

// ShortageError rejects a production run before any movement is written.
// Callers display the shortages per ingredient.
type ShortageError struct {
	ProductSku string
	Shortages  []ShortageLine
}

func (e *ShortageError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (need %s, have %s)", s.Sku, s.Required.String(), s.Available.String()))
	}
	return fmt.Sprintf("insufficient stock to produce %q: %s", e.ProductSku, strings.Join(parts, ", "))
}

func IsShortageError(err error) bool {
	var se *ShortageError
	return errors.As(err, &se)
}

// IsTransactionConflict classifies store-level write conflicts that are safe
// to retry as a whole commit: MySQL lock wait timeout (1205) and deadlock (1213).
// sqlite's "database is locked"/"database table is locked" is matched textually
// since the pure-Go driver does not expose numeric codes.
func IsTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1205 || mysqlErr.Number == 1213
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
