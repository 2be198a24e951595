package models

// Liquid 液相化学数据
var Liquid = &Resource{
	Name:    "liquid",
	Table:   "liquid",
	Key:     "Data ID",
	KeyKind: AutoKey,
	Fields: []Field{
		{Name: "Reaching ID"},
		{Name: "Treatment"},
		{Name: "Fertility"},
		{Name: "Time"},
		{Name: "NH4+", Kind: Number},
		{Name: "NO3-", Kind: Number},
		{Name: "TN", Kind: Number},
		{Name: "Site ID"},
	},
}
