package db

import (
	"testing"

	"github.com/verdantlab/sacredgarden/internal/models"
)

func TestCreateStateTransitionDemotesPreviousCurrent(t *testing.T) {
	database := openSQLiteForTest(t)
	users := NewUserRepository(database)
	needs := NewNeedRepository(database)

	owner := models.User{Email: "alice@example.com"}
	if err := users.Create(&owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	need := models.EmotionalNeed{UserID: owner.ID, Name: "Gifts", StateValueType: models.ValueTypeRelative}
	if err := needs.Create(&need); err != nil {
		t.Fatalf("create need: %v", err)
	}

	trendDown := models.TrendNegative
	first := models.EmotionalNeedState{EmotionalNeedID: need.ID, Status: models.StatusBad, ValueType: models.ValueTypeRelative, ValueRel: &trendDown}
	if err := needs.CreateStateTransition(&first); err != nil {
		t.Fatalf("first transition: %v", err)
	}
	trendUp := models.TrendPositive
	second := models.EmotionalNeedState{EmotionalNeedID: need.ID, Status: models.StatusGood, ValueType: models.ValueTypeRelative, ValueRel: &trendUp}
	if err := needs.CreateStateTransition(&second); err != nil {
		t.Fatalf("second transition: %v", err)
	}

	current, err := needs.FindCurrentState(need.ID)
	if err != nil {
		t.Fatalf("find current: %v", err)
	}
	if current.ID != second.ID {
		t.Fatalf("expected state %d current, got %d", second.ID, current.ID)
	}

	var currentCount int64
	if err := database.Model(&models.EmotionalNeedState{}).
		Where("emotional_need_id = ? AND is_current = ?", need.ID, true).
		Count(&currentCount).Error; err != nil {
		t.Fatalf("count current rows: %v", err)
	}
	if currentCount != 1 {
		t.Fatalf("expected exactly one current row, got %d", currentCount)
	}
}

func TestConnectPartnersRepointsOnlyCurrentRows(t *testing.T) {
	database := openSQLiteForTest(t)
	users := NewUserRepository(database)
	needs := NewNeedRepository(database)

	alice := models.User{Email: "alice@example.com"}
	bob := models.User{Email: "bob@example.com"}
	if err := users.Create(&alice); err != nil {
		t.Fatalf("create alice: %v", err)
	}
	if err := users.Create(&bob); err != nil {
		t.Fatalf("create bob: %v", err)
	}

	need := models.EmotionalNeed{UserID: alice.ID, Name: "Touch", StateValueType: models.ValueTypeRelative}
	if err := needs.Create(&need); err != nil {
		t.Fatalf("create need: %v", err)
	}
	superseded := models.EmotionalNeedState{EmotionalNeedID: need.ID, Status: models.StatusBad, ValueType: models.ValueTypeRelative}
	if err := needs.CreateStateTransition(&superseded); err != nil {
		t.Fatalf("superseded transition: %v", err)
	}
	current := models.EmotionalNeedState{EmotionalNeedID: need.ID, Status: models.StatusGood, ValueType: models.ValueTypeRelative}
	if err := needs.CreateStateTransition(&current); err != nil {
		t.Fatalf("current transition: %v", err)
	}

	if err := users.ConnectPartners(alice.ID, bob.ID); err != nil {
		t.Fatalf("connect: %v", err)
	}

	reloadedSuperseded, err := needs.FindStateByID(superseded.ID)
	if err != nil {
		t.Fatalf("reload superseded: %v", err)
	}
	if reloadedSuperseded.PartnerUserID != nil {
		t.Fatalf("expected superseded row untouched, got partner %v", reloadedSuperseded.PartnerUserID)
	}

	reloadedCurrent, err := needs.FindStateByID(current.ID)
	if err != nil {
		t.Fatalf("reload current: %v", err)
	}
	if reloadedCurrent.PartnerUserID == nil || *reloadedCurrent.PartnerUserID != bob.ID {
		t.Fatalf("expected current row re-pointed at bob, got %v", reloadedCurrent.PartnerUserID)
	}

	reloadedAlice, err := users.FindByID(alice.ID)
	if err != nil {
		t.Fatalf("reload alice: %v", err)
	}
	reloadedBob, err := users.FindByID(bob.ID)
	if err != nil {
		t.Fatalf("reload bob: %v", err)
	}
	if reloadedAlice.PartnerUserID == nil || *reloadedAlice.PartnerUserID != bob.ID {
		t.Fatal("expected alice linked to bob")
	}
	if reloadedBob.PartnerUserID == nil || *reloadedBob.PartnerUserID != alice.ID {
		t.Fatal("expected bob linked to alice")
	}
	if reloadedAlice.PartnerInviteCode != nil || reloadedBob.PartnerInviteCode != nil {
		t.Fatal("expected both invite codes cleared")
	}
}
