package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goccy/go-json"
)

// Row 一行查询结果，键为列名
type Row map[string]interface{}

// Result 写操作结果
type Result struct {
	AffectedRows int64
	InsertID     int64
}

// Store 查询执行器：所有语句都使用绑定参数执行
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New 创建一个新的Store实例
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB 返回底层连接池
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect 返回SQL方言
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Ping 检查数据库连接
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Select 执行查询，返回列名（按表定义顺序）和所有行
func (s *Store) Select(ctx context.Context, query string, args ...interface{}) ([]string, []Row, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, err
	}

	records := []Row{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, nil, err
		}
		row := make(Row, len(columns))
		for i, column := range columns {
			row[column] = convertValue(values[i], types[i])
		}
		records = append(records, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, records, nil
}

// QueryRow 查询单行，调用方负责 Scan
func (s *Store) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return s.db.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

// Exec 执行写操作
func (s *Store) Exec(ctx context.Context, query string, args ...interface{}) (Result, error) {
	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return Result{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Result{}, err
	}
	return Result{AffectedRows: affected}, nil
}

// Insert 执行插入语句并返回数据库生成的主键
func (s *Store) Insert(ctx context.Context, query, keyColumn string, args ...interface{}) (Result, error) {
	if s.dialect.Returning() {
		var id int64
		query += " RETURNING " + s.dialect.Quote(keyColumn)
		if err := s.db.QueryRowContext(ctx, s.dialect.Rebind(query), args...).Scan(&id); err != nil {
			return Result{}, err
		}
		return Result{AffectedRows: 1, InsertID: id}, nil
	}

	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return Result{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Result{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Result{}, err
	}
	return Result{AffectedRows: affected, InsertID: id}, nil
}

// convertValue 将驱动返回的 []byte 按列类型转换，数值列保持数值形式输出
func convertValue(v interface{}, ct *sql.ColumnType) interface{} {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	switch strings.ToUpper(ct.DatabaseTypeName()) {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT",
		"UNSIGNED TINYINT", "UNSIGNED SMALLINT", "UNSIGNED MEDIUMINT", "UNSIGNED INT", "UNSIGNED BIGINT",
		"DECIMAL", "NUMERIC", "FLOAT", "DOUBLE", "REAL", "FLOAT4", "FLOAT8", "INT2", "INT4", "INT8":
		if len(b) == 0 {
			return nil
		}
		return json.Number(string(b))
	case "BLOB", "BINARY", "VARBINARY", "BYTEA", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB":
		return b
	default:
		return string(b)
	}
}
