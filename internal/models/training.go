package models

import "time"

// TrainingStatus is the lifecycle state of a training session.
type TrainingStatus string

// Training statuses.
const (
	TrainingPlanned   TrainingStatus = "planned"
	TrainingOngoing   TrainingStatus = "ongoing"
	TrainingCompleted TrainingStatus = "completed"
)

// Label returns the status text shown to members.
func (s TrainingStatus) Label() string {
	switch s {
	case TrainingOngoing:
		return "Devam Ediyor"
	case TrainingCompleted:
		return "Tamamlandı"
	default:
		return "Planlandı"
	}
}

// Valid reports whether s is a known status.
func (s TrainingStatus) Valid() bool {
	switch s {
	case TrainingPlanned, TrainingOngoing, TrainingCompleted:
		return true
	}
	return false
}

// TrainingTemplates lists the predefined training titles.
var TrainingTemplates = []string{
	"Temel Güvenlik Eğitimi",
	"İleri Seviye Operasyon Eğitimi",
	"Liderlik ve Yönetim Eğitimi",
	"İletişim ve Protokol Eğitimi",
	"Acil Durum Müdahale Eğitimi",
	"Silah Kullanım Eğitimi",
	"Takım Çalışması Eğitimi",
}

// Training is a scheduled training session.
type Training struct {
	ID              uint           `gorm:"primaryKey" json:"-"`
	PublicID        string         `gorm:"uniqueIndex;size:36;not null" json:"id"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	Instructor      string         `gorm:"size:100;not null" json:"instructor"`
	Participants    []string       `gorm:"serializer:json;type:text" json:"participants"`
	Date            time.Time      `gorm:"not null;index" json:"date"`
	DurationMinutes int            `gorm:"not null" json:"duration"`
	Status          TrainingStatus `gorm:"size:20;not null;index" json:"status"`
	Description     string         `gorm:"type:text" json:"description"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName specifies the table name for Training model.
func (Training) TableName() string {
	return "trainings"
}
