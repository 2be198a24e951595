package store

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect SQL方言，决定标识符引用方式和占位符格式
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect 规范化常见的驱动别名
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// DriverName 返回 database/sql 注册的驱动名
func (d Dialect) DriverName() string {
	return string(d)
}

// Quote 引用标识符，标识符中可以包含空格和 + - 等符号
func (d Dialect) Quote(ident string) string {
	switch d {
	case Postgres:
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	default:
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	}
}

// Rebind 将 ? 占位符转换为方言的占位符格式，引号内的内容保持不变
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	var quote rune
	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '?':
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Returning 是否通过 RETURNING 子句获取自增主键
func (d Dialect) Returning() bool {
	return d == Postgres
}

// AutoIncrementColumn 自增主键列的建表定义
func (d Dialect) AutoIncrementColumn(name string) string {
	switch d {
	case Postgres:
		return d.Quote(name) + " SERIAL PRIMARY KEY"
	case SQLite:
		return d.Quote(name) + " INTEGER PRIMARY KEY AUTOINCREMENT"
	default:
		return d.Quote(name) + " INT AUTO_INCREMENT PRIMARY KEY"
	}
}

// NumberType 浮点数列类型
func (d Dialect) NumberType() string {
	switch d {
	case Postgres:
		return "DOUBLE PRECISION"
	case SQLite:
		return "REAL"
	default:
		return "DOUBLE"
	}
}

// TimestampType 时间戳列类型
func (d Dialect) TimestampType() string {
	switch d {
	case SQLite:
		return "DATETIME"
	default:
		return "TIMESTAMP"
	}
}
