package models

import "gorm.io/gorm"

// AdminUser is an administrator account stored in the relational admin
// store. Catalog data lives in MongoDB; accounts stay in SQL so credential
// management works even when the document store is being reseeded.
type AdminUser struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
}
