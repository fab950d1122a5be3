package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string
	FirstName    string

	// Self-referential partner link. Symmetric: maintained only by the
	// pairing transaction, never by a unilateral write.
	PartnerUserID *uint `gorm:"index"`
	PartnerUser   *User `gorm:"foreignKey:PartnerUserID"`

	// Free-text label for a partner who is not on the platform yet.
	PartnerName string

	// Short code used by the other half of a couple to pair up.
	// Non-null exactly while the user has no partner.
	PartnerInviteCode *string `gorm:"uniqueIndex"`

	// Platform-invite gate: a long code handed out by staff, distinct
	// namespace from PartnerInviteCode.
	IsInvited  bool    `gorm:"not null;default:false"`
	InviteCode *string `gorm:"uniqueIndex"`

	IsActive bool `gorm:"not null;default:true"`
	IsStaff  bool `gorm:"not null;default:false"`

	IsSample      bool `gorm:"not null;default:false"`
	HasSampleData bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}

func (user *User) HasPartner() bool {
	return user.PartnerUserID != nil
}
