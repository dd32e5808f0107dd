package sqlite

import (
	"context"
	"testing"
	"time"

	"knowyourplant/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUserRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	u, err := db.Create(ctx, "Leaf", "leaf@example.com", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected non-zero ID")
	}

	got, err := db.GetByEmail(ctx, "leaf@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got == nil || got.Name != "Leaf" {
		t.Errorf("unexpected user %+v", got)
	}

	if missing, _ := db.GetByEmail(ctx, "nobody@example.com"); missing != nil {
		t.Error("expected nil for unknown email")
	}

	if _, err := db.Create(ctx, "Other", "leaf@example.com", "hash2"); err == nil {
		t.Error("expected unique constraint error for duplicate email")
	}

	count, _ := db.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestScanRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	u, err := db.Create(ctx, "Leaf", "leaf@example.com", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Now()
	for i, name := range []string{"Fern", "Ivy", "Monstera"} {
		rec := domain.ScanRecord{
			ID:          name,
			UserID:      u.ID,
			PlantName:   name,
			Confidence:  0.9,
			CaptureType: domain.CaptureImage,
			ScannedAt:   now.Add(time.Duration(i) * time.Minute),
		}
		if err := db.AddScan(ctx, rec); err != nil {
			t.Fatalf("AddScan: %v", err)
		}
	}

	scans, err := db.ListScans(ctx, u.ID, 10)
	if err != nil {
		t.Fatalf("ListScans: %v", err)
	}
	if len(scans) != 3 {
		t.Fatalf("expected 3 scans, got %d", len(scans))
	}
	if scans[0].PlantName != "Monstera" {
		t.Errorf("expected newest first, got %q", scans[0].PlantName)
	}
	if scans[0].CaptureType != domain.CaptureImage {
		t.Errorf("unexpected capture type %q", scans[0].CaptureType)
	}

	limited, _ := db.ListScans(ctx, u.ID, 1)
	if len(limited) != 1 {
		t.Errorf("expected 1 scan with limit, got %d", len(limited))
	}
}

func TestSessionRoundTrip(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepo(db)
	ctx := context.Background()

	u, err := db.Create(ctx, "Leaf", "leaf@example.com", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := sessions.Create(ctx, u.ID, "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create session: %v", err)
	}

	s, err := sessions.GetByToken(ctx, "tok")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if s == nil || s.UserID != u.ID {
		t.Errorf("unexpected session %+v", s)
	}

	_ = sessions.Create(ctx, u.ID, "old", time.Now().Add(-time.Hour))
	if err := sessions.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if s, _ := sessions.GetByToken(ctx, "old"); s != nil {
		t.Error("expected expired session to be purged")
	}

	if err := sessions.Delete(ctx, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s, _ := sessions.GetByToken(ctx, "tok"); s != nil {
		t.Error("expected session to be deleted")
	}
}
