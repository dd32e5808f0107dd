package memory

import (
	"context"
	"testing"
	"time"

	"knowyourplant/internal/domain"
)

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.Create(ctx, "Leaf", "leaf@example.com", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected non-zero ID")
	}

	// Duplicate email
	if _, err := db.Create(ctx, "Other", "leaf@example.com", "hash2"); err == nil {
		t.Error("expected error for duplicate email")
	}

	got, err := db.GetByEmail(ctx, "leaf@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got == nil || got.Name != "Leaf" {
		t.Errorf("unexpected user %+v", got)
	}

	missing, _ := db.GetByEmail(ctx, "nobody@example.com")
	if missing != nil {
		t.Error("expected nil for unknown email")
	}

	byID, _ := db.GetByID(ctx, u.ID)
	if byID == nil || byID.Email != "leaf@example.com" {
		t.Errorf("unexpected user by id %+v", byID)
	}

	count, _ := db.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestScanRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		rec := domain.ScanRecord{
			ID:          string(rune('a' + i)),
			UserID:      1,
			PlantName:   "Fern",
			Confidence:  0.8,
			CaptureType: domain.CaptureImage,
			ScannedAt:   now.Add(time.Duration(i) * time.Minute),
		}
		if err := db.AddScan(ctx, rec); err != nil {
			t.Fatalf("AddScan: %v", err)
		}
	}
	if err := db.AddScan(ctx, domain.ScanRecord{ID: "x", UserID: 2, PlantName: "Ivy", ScannedAt: now}); err != nil {
		t.Fatalf("AddScan: %v", err)
	}

	scans, err := db.ListScans(ctx, 1, 10)
	if err != nil {
		t.Fatalf("ListScans: %v", err)
	}
	if len(scans) != 3 {
		t.Fatalf("expected 3 scans, got %d", len(scans))
	}
	// Newest first
	if scans[0].ID != "c" || scans[2].ID != "a" {
		t.Errorf("expected newest-first ordering, got %q .. %q", scans[0].ID, scans[2].ID)
	}

	// Limit
	limited, _ := db.ListScans(ctx, 1, 2)
	if len(limited) != 2 {
		t.Errorf("expected 2 scans with limit, got %d", len(limited))
	}

	// Other user isolated
	other, _ := db.ListScans(ctx, 2, 10)
	if len(other) != 1 || other[0].PlantName != "Ivy" {
		t.Errorf("unexpected scans for other user: %+v", other)
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	sessions := db.NewSessionRepo()
	ctx := context.Background()

	if err := sessions.Create(ctx, 1, "tok1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s, err := sessions.GetByToken(ctx, "tok1")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if s == nil || s.UserID != 1 {
		t.Errorf("unexpected session %+v", s)
	}

	// Expired sessions are purged on read
	_ = sessions.Create(ctx, 1, "old", time.Now().Add(-time.Hour))
	if s, _ := sessions.GetByToken(ctx, "old"); s != nil {
		t.Error("expected expired session to be dropped")
	}

	if err := sessions.Delete(ctx, "tok1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s, _ := sessions.GetByToken(ctx, "tok1"); s != nil {
		t.Error("expected session to be deleted")
	}

	_ = sessions.Create(ctx, 1, "live", time.Now().Add(time.Hour))
	_ = sessions.Create(ctx, 1, "dead", time.Now().Add(-time.Minute))
	if err := sessions.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if s, _ := sessions.GetByToken(ctx, "live"); s == nil {
		t.Error("live session should survive DeleteExpired")
	}
}
