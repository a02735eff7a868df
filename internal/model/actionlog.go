package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Action types recorded in the log.
const (
	ActionUpdateProductImage     = "update_product_image"
	ActionCreateProductFromPhoto = "create_product_from_photo"
)

// ActionLog is the append-only journal of mutating catalog actions. Appends
// are best-effort: a failed append is logged and never fails the mutation it
// describes.
type ActionLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"column:userid;type:varchar(255);index" json:"userid"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type"`
	Input     string    `json:"input"`
	Result    string    `gorm:"type:varchar(50)" json:"result"`
	Metadata  string    `json:"metadata"` // JSON-encoded action details
	CreatedAt time.Time `json:"created_at"`
}

func (ActionLog) TableName() string {
	return "actionlog"
}

func (l *ActionLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
