package models

import "time"

// EmotionalLetter is a structured message between paired partners: a core
// text plus optional appreciation and advice sections.
type EmotionalLetter struct {
	ID          uint `gorm:"primaryKey"`
	SenderID    uint `gorm:"not null;index"`
	RecipientID uint `gorm:"not null;index"`

	Text             string `gorm:"not null"`
	AppreciationText string
	AdviceText       string

	// One-way flags, false to true only.
	IsRead         bool `gorm:"not null;default:false"`
	IsAcknowledged bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}
