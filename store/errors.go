package store

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

const (
	mysqlErrDupEntry      = 1062
	postgresUniqueViolate = "23505"
	sqliteConstraintPK    = 1555
	sqliteConstraintUniq  = 2067
)

// IsUniqueViolation 判断错误是否为唯一约束冲突
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDupEntry
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == postgresUniqueViolate
	}

	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		switch coded.Code() {
		case sqliteConstraintPK, sqliteConstraintUniq:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
