package service

import (
	"errors"
	"testing"
	"time"

	"github.com/beacon/internal/carousel"
	"github.com/beacon/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDisplayTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.CarouselImage{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestDisplayEmptyWithoutActiveSlides(t *testing.T) {
	gdb, cleanup := setupDisplayTestDB(t)
	defer cleanup()

	display := NewDisplayService(NewCarouselService(gdb), time.Hour)
	defer display.Stop()

	if err := display.Reload(); err != nil {
		t.Fatalf("failed to reload empty display: %v", err)
	}

	if _, err := display.State(); !errors.Is(err, ErrDisplayEmpty) {
		t.Fatalf("expected ErrDisplayEmpty, got %v", err)
	}
}

func TestDisplayManualNavigationPausesRotation(t *testing.T) {
	gdb, cleanup := setupDisplayTestDB(t)
	defer cleanup()

	carousels := NewCarouselService(gdb)
	for _, title := range []string{"Education", "Healthcare", "Relief"} {
		if _, err := carousels.Create(CarouselImageInput{ImageURL: "/c.jpg", Title: title, UserID: 1}); err != nil {
			t.Fatalf("failed to seed image: %v", err)
		}
	}

	display := NewDisplayService(carousels, time.Hour)
	defer display.Stop()

	if err := display.Reload(); err != nil {
		t.Fatalf("failed to reload display: %v", err)
	}

	state, err := display.State()
	if err != nil {
		t.Fatalf("failed to read state: %v", err)
	}
	if state.Index != 0 || state.Total != 3 || state.Paused {
		t.Fatalf("expected fresh display autoplaying at slide 0, got %+v", state)
	}
	if state.Slide.Title != "Education" {
		t.Fatalf("expected slides ordered by sort order, got %q", state.Slide.Title)
	}

	next, err := display.Next()
	if err != nil {
		t.Fatalf("failed to advance display: %v", err)
	}
	if next.Index != 1 || !next.Paused {
		t.Fatalf("expected manual next to pause at slide 1, got %+v", next)
	}

	selected, err := display.Select(2)
	if err != nil {
		t.Fatalf("failed to select slide: %v", err)
	}
	if selected.Index != 2 {
		t.Fatalf("expected slide 2, got %d", selected.Index)
	}

	if _, err := display.Select(3); !errors.Is(err, carousel.ErrSlideOutOfRange) {
		t.Fatalf("expected ErrSlideOutOfRange, got %v", err)
	}

	resumed, err := display.Resume()
	if err != nil {
		t.Fatalf("failed to resume display: %v", err)
	}
	if resumed.Paused {
		t.Fatalf("expected resume to restart autoplay")
	}
}

func TestDisplayReloadPicksUpNewSlides(t *testing.T) {
	gdb, cleanup := setupDisplayTestDB(t)
	defer cleanup()

	carousels := NewCarouselService(gdb)
	if _, err := carousels.Create(CarouselImageInput{ImageURL: "/1.jpg", Title: "One", UserID: 1}); err != nil {
		t.Fatalf("failed to seed image: %v", err)
	}

	display := NewDisplayService(carousels, time.Hour)
	defer display.Stop()

	if err := display.Reload(); err != nil {
		t.Fatalf("failed to reload display: %v", err)
	}

	if _, err := carousels.Create(CarouselImageInput{ImageURL: "/2.jpg", Title: "Two", UserID: 1}); err != nil {
		t.Fatalf("failed to add image: %v", err)
	}

	state, err := display.State()
	if err != nil {
		t.Fatalf("failed to read state: %v", err)
	}
	if state.Total != 1 {
		t.Fatalf("expected slide set to stay fixed until reload, got %d", state.Total)
	}

	if err := display.Reload(); err != nil {
		t.Fatalf("failed to reload display: %v", err)
	}

	state, err = display.State()
	if err != nil {
		t.Fatalf("failed to read state: %v", err)
	}
	if state.Total != 2 || state.Index != 0 || state.Paused {
		t.Fatalf("expected reload to rebuild an autoplaying display, got %+v", state)
	}
}
