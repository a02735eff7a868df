package model

// Product mirrors the production catalog schema. The canonical key is ean13;
// upc keeps the legacy scanned form, so lookups match either column. Note the
// ean13 column holds whatever shape the normalizer produced at write time
// (usually 12 digits), not necessarily a true 13-digit EAN.
//
// Created and LastUpdated are RFC3339 text, matching the column types in the
// production database.
type Product struct {
	ProductName    string `gorm:"column:product_name;type:varchar(255)" json:"product_name"`
	Brand          string `gorm:"type:varchar(255)" json:"brand"`
	UPC            string `gorm:"column:upc;type:varchar(20);index" json:"upc"`
	EAN13          string `gorm:"column:ean13;type:varchar(20);primaryKey" json:"ean13"`
	Ingredients    string `json:"ingredients"`
	LastUpdated    string `gorm:"column:lastupdated" json:"lastupdated"`
	Analysis       string `json:"analysis"`
	Created        string `gorm:"column:created" json:"created"`
	Mfg            string `gorm:"type:varchar(255)" json:"mfg"`
	ImageURL       string `gorm:"column:imageurl" json:"imageurl"`
	Classification string `gorm:"type:varchar(50);index" json:"classification"`
	Issues         string `json:"issues"`
}

func (Product) TableName() string {
	return "products"
}
