package model

// Ingredient is a classified ingredient (vegan / vegetarian / non-vegan /
// undetermined) used by the app's verdict screen. ProductCount tracks how
// many products reference it.
type Ingredient struct {
	Title        string `gorm:"type:varchar(255);primaryKey" json:"title"`
	Class        string `gorm:"type:varchar(50)" json:"class"`
	ProductCount int    `gorm:"column:productcount;default:0" json:"productcount"`
	LastUpdated  string `gorm:"column:lastupdated" json:"lastupdated"`
	Created      string `gorm:"column:created" json:"created"`
	PrimaryClass string `gorm:"column:primary_class;type:varchar(50)" json:"primary_class"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
