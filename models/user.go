package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email      string `gorm:"uniqueIndex;not null"`
	Password   string `gorm:"not null" json:"-"`
	FullName   string
	BodyMassKg float64 // used as the default body-mass hint for meal scoring
	DietGoals  string
	Disabled   bool
}
