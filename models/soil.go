package models

// Soil 土壤理化性质数据
var Soil = &Resource{
	Name:    "soil",
	Table:   "soil physicochemical",
	Key:     "Data ID",
	KeyKind: AutoKey,
	Fields: []Field{
		{Name: "Site ID"},
		{Name: "Reaching ID"},
		{Name: "Treatment"},
		{Name: "Fertility"},
		{Name: "Time"},
		{Name: "PH", Kind: Number},
		{Name: "EC", Kind: Number},
		{Name: "SM", Kind: Number},
		{Name: "SOM", Kind: Number},
		{Name: "DOC", Kind: Number},
		{Name: "NH4+", Kind: Number},
		{Name: "NO3-", Kind: Number},
		{Name: "TN", Kind: Number},
	},
}
