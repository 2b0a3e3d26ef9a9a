package utils

import (
	"errors"
	"fmt"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

func TestIsTransactionConflict(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql deadlock", &mysqlDriver.MySQLError{Number: 1213}, true},
		{"mysql lock wait timeout", &mysqlDriver.MySQLError{Number: 1205}, true},
		{"mysql duplicate key", &mysqlDriver.MySQLError{Number: 1062}, false},
		{"wrapped deadlock", fmt.Errorf("commit: %w", &mysqlDriver.MySQLError{Number: 1213}), true},
		{"sqlite busy", errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{"plain error", errors.New("vendor name required"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTransactionConflict(tc.err); got != tc.want {
				t.Fatalf("IsTransactionConflict(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestTypedErrorPredicates(t *testing.T) {
	ve := NewValidationError("vendor_name", "must not be blank")
	if !IsValidationError(ve) || IsReferenceError(ve) || IsShortageError(ve) {
		t.Fatalf("validation error misclassified")
	}
	re := NewReferenceError("GHOST-9", "no inventory record for dispatch")
	if !IsReferenceError(re) || IsValidationError(re) {
		t.Fatalf("reference error misclassified")
	}
	wrapped := fmt.Errorf("commit: %w", re)
	if !IsReferenceError(wrapped) {
		t.Fatalf("wrapped reference error not detected")
	}
}
