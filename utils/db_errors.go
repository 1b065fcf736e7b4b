package utils

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

// IsDuplicateKey reports whether err is a unique-constraint violation from
// any of the supported drivers.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
