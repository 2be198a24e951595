package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"go-agrilab/store"
)

// Kind 字段的存储类型
type Kind int

const (
	Text Kind = iota
	Number
)

// Field 字段映射：请求体中的字段名与数据库列名一一对应
type Field struct {
	Name string
	Kind Kind
	// Required 创建时必填
	Required bool
	// RequiredOnUpdate 更新时也必填
	RequiredOnUpdate bool
}

// KeyKind 主键类型
type KeyKind int

const (
	// AutoKey 数据库自增主键
	AutoKey KeyKind = iota
	// NaturalKey 客户端提供的自然主键
	NaturalKey
)

// Resource 资源定义，初始化后只读，所有请求共享
type Resource struct {
	// Name 路由前缀 /api/{Name}
	Name    string
	Table   string
	Key     string
	KeyKind KeyKind
	// Fields 按插入顺序排列，自然主键也包含在内
	Fields []Field
	// RequiredMessage 必填字段缺失时的错误信息
	RequiredMessage string
}

// InsertFields 插入语句的列，与绑定参数顺序一致
func (r *Resource) InsertFields() []Field {
	return r.Fields
}

// UpdateFields 更新语句的列，主键不可修改
func (r *Resource) UpdateFields() []Field {
	fields := make([]Field, 0, len(r.Fields))
	for _, f := range r.Fields {
		if f.Name == r.Key {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// Statements 预先生成的SQL语句，标识符全部经过方言引用
type Statements struct {
	List   string
	Insert string
	Update string
	Delete string
}

// Statements 按方言生成该资源的SQL语句
func (r *Resource) Statements(d store.Dialect) Statements {
	table := d.Quote(r.Table)
	key := d.Quote(r.Key)

	insertFields := r.InsertFields()
	columns := make([]string, len(insertFields))
	placeholders := make([]string, len(insertFields))
	for i, f := range insertFields {
		columns[i] = d.Quote(f.Name)
		placeholders[i] = "?"
	}

	updateFields := r.UpdateFields()
	assignments := make([]string, len(updateFields))
	for i, f := range updateFields {
		assignments[i] = d.Quote(f.Name) + " = ?"
	}

	return Statements{
		List:   "SELECT * FROM " + table,
		Insert: "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")",
		Update: "UPDATE " + table + " SET " + strings.Join(assignments, ", ") + " WHERE " + key + " = ?",
		Delete: "DELETE FROM " + table + " WHERE " + key + " = ?",
	}
}

// CreateTable 建表语句
func (r *Resource) CreateTable(d store.Dialect) string {
	var columns []string
	if r.KeyKind == AutoKey {
		columns = append(columns, d.AutoIncrementColumn(r.Key))
	}
	for _, f := range r.Fields {
		column := d.Quote(f.Name) + " " + columnType(d, f)
		if f.Name == r.Key {
			column += " NOT NULL PRIMARY KEY"
		}
		columns = append(columns, column)
	}
	return "CREATE TABLE IF NOT EXISTS " + d.Quote(r.Table) + " (" + strings.Join(columns, ", ") + ")"
}

func columnType(d store.Dialect, f Field) string {
	if f.Kind == Number {
		return d.NumberType()
	}
	return "VARCHAR(255)"
}

// Args 按字段顺序取出绑定参数，缺失的字段写入 NULL
func Args(fields []Field, body map[string]interface{}) ([]interface{}, error) {
	args := make([]interface{}, len(fields))
	for i, f := range fields {
		v, err := bindValue(body[f.Name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		args[i] = v
	}
	return args, nil
}

func bindValue(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case nil, string, bool, float64:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// ParseID 校验路径中的ID。自增主键必须是数字，自然主键原样使用
func (r *Resource) ParseID(raw string) (interface{}, bool) {
	if r.KeyKind == NaturalKey {
		return raw, raw != ""
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return id, true
}
