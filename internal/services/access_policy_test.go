package services

import (
	"testing"

	"github.com/verdantlab/sacredgarden/internal/models"
)

func TestCanViewNeed(t *testing.T) {
	owner := models.User{ID: 1, PartnerUserID: uintPtr(2)}
	partner := models.User{ID: 2, PartnerUserID: uintPtr(1)}
	stranger := models.User{ID: 3}
	sample := models.User{ID: 4, IsSample: true}

	cases := []struct {
		name  string
		actor *models.User
		who   *models.User
		want  bool
	}{
		{"owner sees own", &owner, &owner, true},
		{"partner sees owner's", &partner, &owner, true},
		{"stranger blocked", &stranger, &owner, false},
		{"anyone sees sample user's", &stranger, &sample, true},
		{"nil actor blocked", nil, &owner, false},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := CanViewNeed(testCase.actor, testCase.who); got != testCase.want {
				t.Fatalf("expected %v, got %v", testCase.want, got)
			}
		})
	}
}

func TestCanMutateNeedIsOwnerOnly(t *testing.T) {
	owner := models.User{ID: 1, PartnerUserID: uintPtr(2)}
	partner := models.User{ID: 2, PartnerUserID: uintPtr(1)}
	need := models.EmotionalNeed{ID: 10, UserID: owner.ID}

	if !CanMutateNeed(&owner, &need) {
		t.Fatal("expected owner allowed")
	}
	if CanMutateNeed(&partner, &need) {
		t.Fatal("expected partner blocked")
	}
	if !CanMutateNeedState(&owner, &need) {
		t.Fatal("expected owner allowed for states")
	}
	if CanMutateNeedState(&partner, &need) {
		t.Fatal("expected partner blocked for states")
	}
}

func TestLetterPolicies(t *testing.T) {
	sender := models.User{ID: 1}
	recipient := models.User{ID: 2}
	stranger := models.User{ID: 3}
	letter := models.EmotionalLetter{ID: 5, SenderID: sender.ID, RecipientID: recipient.ID}

	if !CanViewLetter(&sender, &letter) || !CanViewLetter(&recipient, &letter) {
		t.Fatal("expected both parties to view")
	}
	if CanViewLetter(&stranger, &letter) {
		t.Fatal("expected stranger blocked from viewing")
	}

	if !CanMutateLetter(&sender, &letter) {
		t.Fatal("expected sender to mutate")
	}
	if CanMutateLetter(&recipient, &letter) {
		t.Fatal("expected recipient blocked from mutating")
	}

	if !CanFlagLetter(&sender, &letter) || !CanFlagLetter(&recipient, &letter) {
		t.Fatal("expected both parties to flag")
	}
	if CanFlagLetter(&stranger, &letter) {
		t.Fatal("expected stranger blocked from flagging")
	}
}
