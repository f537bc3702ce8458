package models

import "gorm.io/gorm"

// Guest is the billable party reservations and orders are attached to.
type Guest struct {
	gorm.Model

	FullName string `json:"fullName" gorm:"size:255;not null"`
	Email    string `json:"email" gorm:"size:150"`
	Phone    string `json:"phone,omitempty" gorm:"size:50"`
}
