package database

import (
	"errors"
	"fmt"
	"testing"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm duplicated key", fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey), true},
		{"mysql 1062", &mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'users.ux_users_email'"}, true},
		{"wrapped mysql 1062", fmt.Errorf("create user: %w", &mysqldrv.MySQLError{Number: 1062}), true},
		{"mysql foreign key", &mysqldrv.MySQLError{Number: 1452}, false},
		{"record not found", gorm.ErrRecordNotFound, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDuplicateKeyError(tc.err))
		})
	}
}
