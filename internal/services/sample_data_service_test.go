package services

import (
	"errors"
	"testing"

	"github.com/verdantlab/sacredgarden/internal/models"
	"gorm.io/gorm"
)

func (stub *pairingUserRepositoryStub) FindSampleUser() (models.User, error) {
	for _, user := range stub.users {
		if user.IsSample {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func newSampleDataServiceForTest() (*SampleDataService, *pairingUserRepositoryStub, *needRepositoryStub, *letterRepositoryStub) {
	users := newPairingUserRepositoryStub()
	needs := newNeedRepositoryStub()
	letters := newLetterRepositoryStub()
	pairing := newPairingService(users)
	service := NewSampleDataService(users, needs, letters, pairing, 6)
	return service, users, needs, letters
}

func TestEnsureSampleUserCreatesOnce(t *testing.T) {
	service, users, _, _ := newSampleDataServiceForTest()

	first, err := service.EnsureSampleUser("sample@sacredgarden.local")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if !first.IsSample {
		t.Fatal("expected the account flagged as sample")
	}
	if first.PartnerInviteCode == nil {
		t.Fatal("expected the sample account to carry a partner invite code")
	}

	second, err := service.EnsureSampleUser("sample@sacredgarden.local")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same account, got %d and %d", first.ID, second.ID)
	}
	if len(users.users) != 1 {
		t.Fatalf("expected one account, got %d", len(users.users))
	}
}

func TestPopulateSeedsBothSides(t *testing.T) {
	service, users, needs, _ := newSampleDataServiceForTest()

	sample, err := service.EnsureSampleUser("sample@sacredgarden.local")
	if err != nil {
		t.Fatalf("ensure sample: %v", err)
	}

	user := models.User{Email: "alice@example.com"}
	if err := users.Create(&user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := service.Populate(&user); err != nil {
		t.Fatalf("populate: %v", err)
	}

	stored := users.users[user.ID]
	if stored.PartnerUserID == nil || *stored.PartnerUserID != sample.ID {
		t.Fatal("expected the user linked to the sample account")
	}
	if stored.PartnerInviteCode != nil {
		t.Fatal("expected the user's partner invite code cleared")
	}
	if !stored.HasSampleData {
		t.Fatal("expected has_sample_data set")
	}

	storedSample := users.users[sample.ID]
	if storedSample.PartnerUserID != nil {
		t.Fatal("expected the shared sample account to stay unlinked")
	}

	userNeedStates := 0
	sampleNeedStates := 0
	for _, need := range needs.needs {
		if !need.IsSample {
			t.Fatalf("expected only sample needs, got %+v", need)
		}
		history, err := needs.ListHistory(need.ID)
		if err != nil {
			t.Fatalf("history: %v", err)
		}
		switch need.UserID {
		case user.ID:
			userNeedStates = len(history)
		case sample.ID:
			sampleNeedStates = len(history)
			if need.SampleUserPartnerID == nil || *need.SampleUserPartnerID != user.ID {
				t.Fatal("expected the sample-side need tagged with the partner user")
			}
		}

		current := 0
		for _, state := range history {
			if state.IsCurrent {
				current++
			}
			if state.ValueRel == nil {
				t.Fatal("expected every seeded state to carry a trend")
			}
		}
		if current != 1 {
			t.Fatalf("expected one current state per need, got %d", current)
		}
	}
	if userNeedStates != len(sampleSelfSeed) {
		t.Fatalf("expected %d states on the user's need, got %d", len(sampleSelfSeed), userNeedStates)
	}
	if sampleNeedStates != len(samplePartnerSeed) {
		t.Fatalf("expected %d states on the sample need, got %d", len(samplePartnerSeed), sampleNeedStates)
	}
}

func TestPopulateRejectsPairedUser(t *testing.T) {
	service, users, _, _ := newSampleDataServiceForTest()
	if _, err := service.EnsureSampleUser("sample@sacredgarden.local"); err != nil {
		t.Fatalf("ensure sample: %v", err)
	}

	user := models.User{Email: "alice@example.com", PartnerUserID: uintPtr(42)}
	if err := users.Create(&user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := service.Populate(&user); !errors.Is(err, ErrAlreadyPaired) {
		t.Fatalf("expected already paired, got %v", err)
	}
}

func TestPopulateWithoutSampleUser(t *testing.T) {
	service, users, _, _ := newSampleDataServiceForTest()

	user := models.User{Email: "alice@example.com"}
	if err := users.Create(&user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := service.Populate(&user); !errors.Is(err, ErrSampleUserMissing) {
		t.Fatalf("expected sample user missing, got %v", err)
	}
}

func TestCleanRestoresInviteCodeAndRemovesSeedData(t *testing.T) {
	service, users, needs, letters := newSampleDataServiceForTest()

	sample, err := service.EnsureSampleUser("sample@sacredgarden.local")
	if err != nil {
		t.Fatalf("ensure sample: %v", err)
	}
	user := models.User{Email: "alice@example.com"}
	if err := users.Create(&user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := service.Populate(&user); err != nil {
		t.Fatalf("populate: %v", err)
	}

	letter := models.EmotionalLetter{SenderID: user.ID, RecipientID: sample.ID, Text: "hello sample"}
	if err := letters.Create(&letter); err != nil {
		t.Fatalf("seed letter: %v", err)
	}

	populated := users.users[user.ID]
	if err := service.Clean(&populated); err != nil {
		t.Fatalf("clean: %v", err)
	}

	stored := users.users[user.ID]
	if stored.PartnerUserID != nil {
		t.Fatal("expected the sample link severed")
	}
	if stored.PartnerInviteCode == nil || len(*stored.PartnerInviteCode) != 6 {
		t.Fatalf("expected a fresh partner invite code, got %v", stored.PartnerInviteCode)
	}
	if stored.HasSampleData {
		t.Fatal("expected has_sample_data cleared")
	}

	if len(needs.needs) != 0 {
		t.Fatalf("expected all seeded needs removed, %d left", len(needs.needs))
	}
	if len(needs.states) != 0 {
		t.Fatalf("expected all seeded states removed, %d left", len(needs.states))
	}
	if len(letters.letters) != 0 {
		t.Fatalf("expected letters with the sample account removed, %d left", len(letters.letters))
	}
}
