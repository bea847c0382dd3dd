package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catalog represents a catalog record.
// It includes a generated identifier, a required name and an optional description.
type Catalog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:text;not null" validate:"notblank,wellformed"`
	Description *string   `gorm:"type:text" validate:"omitempty,wellformed"`
}

func (c *Catalog) TableName() string {
	return "catalog.items"
}

// BeforeCreate assigns the identifier when the caller left it unset.
func (c *Catalog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
