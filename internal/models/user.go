package models

// User represents an account created from an identity-provider login.
type User struct {
	Base
	Username   string     `gorm:"index;not null" json:"username"`
	Email      string     `gorm:"uniqueIndex;not null" json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Strategies []Strategy `gorm:"foreignKey:UserID" json:"strategies,omitempty"`
}
