package models

// Treatment 处理方式字典表
var Treatment = &Resource{
	Name:    "treatment",
	Table:   "treatment",
	Key:     "Data ID",
	KeyKind: AutoKey,
	Fields: []Field{
		{Name: "Treatment", Required: true, RequiredOnUpdate: true},
	},
	RequiredMessage: "处理方式不能为空",
}

// Resources 所有对外提供CRUD接口的资源
func Resources() []*Resource {
	return []*Resource{Air, Climactic, Liquid, Soil, Treatment}
}
