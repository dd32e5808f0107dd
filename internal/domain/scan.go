package domain

import (
	"context"
	"time"
)

// CaptureType distinguishes uploaded stills from live camera frames.
type CaptureType string

// Capture types recorded with each scan.
const (
	CaptureImage CaptureType = "image"
	CaptureLive  CaptureType = "live"
)

// CareTip is a single care instruction displayed with a ScanResult.
type CareTip struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ScanResult is the identification produced for one image.
type ScanResult struct {
	PlantName      string    `json:"plant_name"`
	ScientificName string    `json:"scientific_name"`
	Confidence     float64   `json:"confidence"`
	Description    string    `json:"description"`
	Habitat        string    `json:"habitat"`
	Uses           []string  `json:"uses"`
	CareTips       []CareTip `json:"care_tips"`
	IsToxic        bool      `json:"is_toxic"`
}

// Normalize clamps Confidence into [0,1] and replaces nil list fields with
// empty slices so renderers can range over them without nil checks. Result
// payloads cross the system boundary through here before anything else sees
// them.
func (r *ScanResult) Normalize() {
	r.Confidence = Clamp01(r.Confidence)
	if r.Uses == nil {
		r.Uses = []string{}
	}
	if r.CareTips == nil {
		r.CareTips = []CareTip{}
	}
}

// ScanRecord is a persisted scan belonging to a user.
type ScanRecord struct {
	ID          string      `json:"id"`
	UserID      int64       `json:"-"`
	PlantName   string      `json:"plant_name"`
	Confidence  float64     `json:"confidence"`
	CaptureType CaptureType `json:"capture_type"`
	ScannedAt   time.Time   `json:"scanned_at"`
}

// ScanRepository is the port for scan-history persistence.
type ScanRepository interface {
	AddScan(ctx context.Context, rec ScanRecord) error
	ListScans(ctx context.Context, userID int64, limit int) ([]ScanRecord, error)
}
