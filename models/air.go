package models

// Air 温室气体通量数据
var Air = &Resource{
	Name:    "air",
	Table:   "air",
	Key:     "Data ID",
	KeyKind: AutoKey,
	Fields: []Field{
		{Name: "Reaching ID"},
		{Name: "Treatment"},
		{Name: "Fertility"},
		{Name: "Time"},
		{Name: "N2O", Kind: Number},
		{Name: "NH3", Kind: Number},
		{Name: "CO2", Kind: Number},
		{Name: "CH4", Kind: Number},
		{Name: "Site ID"},
	},
}
