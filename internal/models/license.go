package models

import "time"

// LicenseStatus is the lifecycle state of an issued license.
type LicenseStatus string

// License statuses.
const (
	LicenseActive    LicenseStatus = "active"
	LicenseExpired   LicenseStatus = "expired"
	LicenseSuspended LicenseStatus = "suspended"
)

// LicenseTypes lists the license kinds that can be issued.
var LicenseTypes = []string{
	"Araç Kullanma Lisansı",
	"Silah Taşıma Lisansı",
	"Özel Güvenlik Lisansı",
	"Eğitmen Lisansı",
	"Yönetici Lisansı",
	"Operasyon Lisansı",
}

// IsLicenseType reports whether name is one of LicenseTypes.
func IsLicenseType(name string) bool {
	for _, t := range LicenseTypes {
		if t == name {
			return true
		}
	}
	return false
}

// License is a permit issued to a member for a fixed number of days.
type License struct {
	ID          uint          `gorm:"primaryKey" json:"-"`
	PublicID    string        `gorm:"uniqueIndex;size:36;not null" json:"id"`
	UserName    string        `gorm:"size:100;not null;index" json:"user_name"`
	LicenseType string        `gorm:"size:100;not null" json:"license_type"`
	IssueDate   time.Time     `gorm:"not null" json:"issue_date"`
	ExpiryDate  time.Time     `gorm:"not null;index" json:"expiry_date"`
	Status      LicenseStatus `gorm:"size:20;not null;index" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName specifies the table name for License model.
func (License) TableName() string {
	return "licenses"
}

// ExpiredAt reports whether the license validity has ended at t.
func (l *License) ExpiredAt(t time.Time) bool {
	return !t.Before(l.ExpiryDate)
}
