package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	schema := Climactic.Schema(false)
	assert.Equal(t, "https://agrilab.local/schemas/climactic.json", schema["$id"])
	assert.Equal(t, []string{"Site ID", "Site name"}, schema["required"])

	schema = Climactic.Schema(true)
	_, ok := schema["required"]
	assert.False(t, ok)
	assert.NotContains(t, schema["properties"], "Site ID")

	assert.Equal(t, []string{"Treatment"}, Treatment.Schema(true)["required"])

	_, ok = Air.Schema(false)["required"]
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	v, err := NewValidator(Resources()...)
	require.NoError(t, err)

	cases := []struct {
		name     string
		resource string
		body     map[string]interface{}
		update   bool
		valid    bool
	}{
		{"required present", "treatment", map[string]interface{}{"Treatment": "CK"}, false, true},
		{"required missing", "treatment", map[string]interface{}{}, false, false},
		{"required empty string", "treatment", map[string]interface{}{"Treatment": ""}, false, false},
		{"required null", "treatment", map[string]interface{}{"Treatment": nil}, false, false},
		{"required zero", "treatment", map[string]interface{}{"Treatment": json.Number("0")}, false, false},
		{"required false", "treatment", map[string]interface{}{"Treatment": false}, false, false},
		{"required on update", "treatment", map[string]interface{}{}, true, false},
		{"object value", "air", map[string]interface{}{"N2O": map[string]interface{}{"v": 1}}, false, false},
		{"array value", "air", map[string]interface{}{"Site ID": []interface{}{"S1"}}, false, false},
		{"no required fields", "air", map[string]interface{}{}, false, true},
		{"numbers and nulls", "air", map[string]interface{}{"N2O": json.Number("0.12"), "CH4": nil}, false, true},
		{"climactic missing name", "climactic", map[string]interface{}{"Site ID": "S1"}, false, false},
		{"climactic update without key", "climactic", map[string]interface{}{"Site name": "Nanjing"}, true, true},
		{"climactic update without name", "climactic", map[string]interface{}{"MAT": json.Number("15.5")}, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.resource, tc.body, tc.update)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}

	assert.Error(t, v.Validate("unknown", map[string]interface{}{}, false))
}
