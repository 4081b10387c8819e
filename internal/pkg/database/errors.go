package database

import (
	"errors"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL error 1062: duplicate entry for a unique key.
const mysqlErrDuplicateEntry = 1062

// IsDuplicateKeyError reports whether err is a unique-constraint violation,
// so callers can answer conflicts instead of surfacing a server error.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldrv.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}
