package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/platefinder/platefinder-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Phone        *string        `gorm:"column:phone"`
	AboutMe      *string        `gorm:"column:about_me"`
	City         *string        `gorm:"column:city"`
	State        *string        `gorm:"column:state"`
	Country      *string        `gorm:"column:country"`
	Languages    *string        `gorm:"column:languages"`
	Gender       *enums.Gender  `gorm:"column:gender;type:text"`
	ProfilePic   *string        `gorm:"column:profile_pic"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:'user'"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
