// Package models defines domain models for the dashboard.
package models

import (
	"time"
)

// Default placement for newly registered accounts.
const (
	DefaultRank  = "Stajyer"
	DefaultBadge = "memurlar"
)

// Account represents a registered dashboard member.
type Account struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	FullName      string     `gorm:"size:255;not null" json:"full_name"`
	Username      string     `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email         string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash  string     `gorm:"size:255;not null" json:"-"`
	HabboUsername string     `gorm:"size:100" json:"habbo_username"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`
	Rank          string     `gorm:"size:100" json:"rank"`
	Badge         string     `gorm:"size:100" json:"badge"`
	WorkTime      int        `gorm:"not null;default:0" json:"work_time"`
	Salary        int        `gorm:"not null;default:0" json:"salary"`
	JoinDate      time.Time  `gorm:"not null" json:"join_date"`
	LastLogin     *time.Time `json:"last_login"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Filled from the profile API on login, never stored.
	Motto  string `gorm:"-" json:"motto,omitempty"`
	Avatar string `gorm:"-" json:"avatar,omitempty"`
}

// TableName specifies the table name for Account model.
func (Account) TableName() string {
	return "accounts"
}
