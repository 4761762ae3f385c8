package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user account can hold. Admin is a role of its own, not an overlay flag.
const (
	RoleLearner = "LEARNER"
	RoleCreator = "CREATOR"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage        string     `gorm:"default:''"`
	Name                string     `gorm:"default:''"`
	Bio                 string     `gorm:"size:500;default:''"`
	Email               string     `gorm:"unique;not null"`
	Role                string     `gorm:"default:'LEARNER'"` // LEARNER, CREATOR, ADMIN
	Password            string     `json:"-"`
	ExternalSubject     *string    `gorm:"uniqueIndex"` // identity-provider subject for federated logins
	IsEmailVerified     bool       `gorm:"default:false"`
	LastLogin           time.Time  `gorm:"default:NULL"`
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}
