package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category is an envelope money is allocated to and spent from.
type Category struct {
	DefaultModel
	Name        string       `gorm:"uniqueIndex"`
	Note        string
	Allocations []Allocation `gorm:"constraint:OnDelete:CASCADE"`
	Goal        *Goal        `gorm:"constraint:OnDelete:CASCADE"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)
	return nil
}
