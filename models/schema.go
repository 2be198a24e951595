package models

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

const schemaIDPrefix = "https://agrilab.local/schemas/"

// scalarTypes 字段值只允许JSON标量
var scalarTypes = []string{"string", "number", "boolean", "null"}

// falsy 必填字段不能取的值
var falsy = []interface{}{"", 0, false, nil}

// Schema 生成资源请求体的 JSON Schema。update 为 true 时不包含主键，只检查 RequiredOnUpdate 字段
func (r *Resource) Schema(update bool) map[string]interface{} {
	fields := r.InsertFields()
	id := schemaIDPrefix + r.Name + ".json"
	if update {
		fields = r.UpdateFields()
		id = schemaIDPrefix + r.Name + ".update.json"
	}

	properties := make(map[string]interface{}, len(fields))
	var required []string
	for _, f := range fields {
		property := map[string]interface{}{"type": scalarTypes}
		if (!update && f.Required) || (update && f.RequiredOnUpdate) {
			property["not"] = map[string]interface{}{"enum": falsy}
			required = append(required, f.Name)
		}
		properties[f.Name] = property
	}

	schema := map[string]interface{}{
		"$id":        id,
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Validator 按资源校验请求体
type Validator struct {
	create map[string]*gojsonschema.Schema
	update map[string]*gojsonschema.Schema
}

// NewValidator 为每个资源编译创建和更新两份 schema
func NewValidator(resources ...*Resource) (*Validator, error) {
	v := &Validator{
		create: make(map[string]*gojsonschema.Schema, len(resources)),
		update: make(map[string]*gojsonschema.Schema, len(resources)),
	}
	for _, r := range resources {
		create, err := compile(r.Schema(false))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema for %s: %w", r.Name, err)
		}
		update, err := compile(r.Schema(true))
		if err != nil {
			return nil, fmt.Errorf("cannot compile update schema for %s: %w", r.Name, err)
		}
		v.create[r.Name] = create
		v.update[r.Name] = update
	}
	return v, nil
}

func compile(doc map[string]interface{}) (*gojsonschema.Schema, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
}

// Validate 校验请求体，返回的错误信息列出所有不符合的字段
func (v *Validator) Validate(resource string, body map[string]interface{}, update bool) error {
	schemas := v.create
	if update {
		schemas = v.update
	}
	schema, ok := schemas[resource]
	if !ok {
		return fmt.Errorf("there is no schema for %s", resource)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(body))
	if err != nil {
		return fmt.Errorf("cannot validate %s: %w", resource, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
