package services

import "github.com/verdantlab/sacredgarden/internal/models"

// Access-scoping predicates. The api layer consults these before invoking
// the owning service.

// CanViewNeed permits the need's owner, the owner's partner, and anyone
// when the owner is the demo sample account.
func CanViewNeed(actor *models.User, owner *models.User) bool {
	if actor == nil || owner == nil {
		return false
	}
	if actor.ID == owner.ID {
		return true
	}
	if owner.PartnerUserID != nil && *owner.PartnerUserID == actor.ID {
		return true
	}
	return owner.IsSample
}

// CanMutateNeed permits only the need's owner to change or delete it.
func CanMutateNeed(actor *models.User, need *models.EmotionalNeed) bool {
	return actor != nil && need != nil && need.UserID == actor.ID
}

// CanMutateNeedState permits only the parent need's owner; the partner
// never mutates state directly.
func CanMutateNeedState(actor *models.User, need *models.EmotionalNeed) bool {
	return CanMutateNeed(actor, need)
}

// CanViewLetter permits sender and recipient.
func CanViewLetter(actor *models.User, letter *models.EmotionalLetter) bool {
	if actor == nil || letter == nil {
		return false
	}
	return letter.SenderID == actor.ID || letter.RecipientID == actor.ID
}

// CanMutateLetter permits the sender only (edits and deletion).
func CanMutateLetter(actor *models.User, letter *models.EmotionalLetter) bool {
	return actor != nil && letter != nil && letter.SenderID == actor.ID
}

// CanFlagLetter covers the one-way read/acknowledged flips, open to either
// party. The narrower recipient-only rule is a pending product decision.
func CanFlagLetter(actor *models.User, letter *models.EmotionalLetter) bool {
	return CanViewLetter(actor, letter)
}
