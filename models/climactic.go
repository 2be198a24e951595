package models

// Climactic 气候监测站点，以客户端提供的 Site ID 作为主键
var Climactic = &Resource{
	Name:    "climactic",
	Table:   "climactic",
	Key:     "Site ID",
	KeyKind: NaturalKey,
	Fields: []Field{
		{Name: "Site ID", Required: true},
		{Name: "Site name", Required: true},
		{Name: "Longitude", Kind: Number},
		{Name: "Latitude", Kind: Number},
		{Name: "MAT", Kind: Number},
		{Name: "MAR", Kind: Number},
	},
	RequiredMessage: "站点ID和名称为必填项",
}
