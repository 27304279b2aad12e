package service

import (
	"errors"
	"testing"

	"github.com/beacon/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupVolunteerTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.VolunteerSignup{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestVolunteerSubmitDefaultsToPending(t *testing.T) {
	gdb, cleanup := setupVolunteerTestDB(t)
	defer cleanup()

	svc := NewVolunteerService(gdb)
	if _, err := svc.Submit(SignupInput{Name: "A"}); !errors.Is(err, ErrSignupInvalidInput) {
		t.Fatalf("expected ErrSignupInvalidInput, got %v", err)
	}

	signup, err := svc.Submit(SignupInput{
		Name:            "Ada",
		Email:           "ada@x.com",
		Phone:           "+1-555-222-3333",
		Interests:       "education,healthcare",
		CommitmentLevel: "4-8 hours/week",
		Skills:          "teaching",
	})
	if err != nil {
		t.Fatalf("failed to submit signup: %v", err)
	}
	if signup.Status != db.SignupStatusPending {
		t.Fatalf("expected status pending, got %s", signup.Status)
	}
	if signup.Message != "" {
		t.Fatalf("expected optional message to stay empty")
	}
}

func TestVolunteerStatusTransitions(t *testing.T) {
	gdb, cleanup := setupVolunteerTestDB(t)
	defer cleanup()

	svc := NewVolunteerService(gdb)
	signup, err := svc.Submit(SignupInput{
		Name:            "Ada",
		Email:           "ada@x.com",
		Phone:           "+1-555-222-3333",
		Interests:       "education",
		CommitmentLevel: "2-4 hours/week",
		Skills:          "mentoring",
	})
	if err != nil {
		t.Fatalf("failed to submit signup: %v", err)
	}

	approved, err := svc.UpdateStatus(signup.ID, "Approved")
	if err != nil {
		t.Fatalf("failed to approve signup: %v", err)
	}
	if approved.Status != db.SignupStatusApproved {
		t.Fatalf("expected status approved, got %s", approved.Status)
	}

	if _, err := svc.UpdateStatus(signup.ID, "waitlisted"); !errors.Is(err, ErrSignupStatusInvalid) {
		t.Fatalf("expected ErrSignupStatusInvalid, got %v", err)
	}
}

func TestVolunteerListAndDelete(t *testing.T) {
	gdb, cleanup := setupVolunteerTestDB(t)
	defer cleanup()

	svc := NewVolunteerService(gdb)
	signup, err := svc.Submit(SignupInput{
		Name:            "Ada",
		Email:           "ada@x.com",
		Phone:           "+1-555-222-3333",
		Interests:       "relief",
		CommitmentLevel: "6-10 hours/week",
		Skills:          "logistics",
	})
	if err != nil {
		t.Fatalf("failed to submit signup: %v", err)
	}

	pending, err := svc.List(db.SignupStatusPending)
	if err != nil {
		t.Fatalf("failed to list signups: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending signup, got %d", len(pending))
	}

	if err := svc.Delete(signup.ID); err != nil {
		t.Fatalf("failed to delete signup: %v", err)
	}
	if err := svc.Delete(signup.ID); !errors.Is(err, ErrSignupNotFound) {
		t.Fatalf("expected ErrSignupNotFound, got %v", err)
	}
}
