package models

import (
	"strings"

	"gorm.io/gorm"
)

type Payee struct {
	DefaultModel
	Name string `gorm:"uniqueIndex"`
}

func (p *Payee) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	return nil
}

// PayeeByName returns the payee with the name, creating it if it does not
// exist yet.
func PayeeByName(db *gorm.DB, name string) (Payee, error) {
	payee := Payee{Name: strings.TrimSpace(name)}
	err := db.Where(Payee{Name: payee.Name}).FirstOrCreate(&payee).Error
	return payee, err
}
