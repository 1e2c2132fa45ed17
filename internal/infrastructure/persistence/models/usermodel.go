package models

import "time"

// UserModel is the persistence model for users. It is the
// anti-corruption layer between the domain aggregate and the database.
type UserModel struct {
	ID               uint   `gorm:"primarykey"`
	Email            string `gorm:"uniqueIndex;not null;size:255"`
	Name             string `gorm:"not null;size:100"`
	PasswordHash     string `gorm:"not null;size:255"`
	Role             string `gorm:"not null;size:20;default:user"`
	RefreshTokenHash *string `gorm:"size:64"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
