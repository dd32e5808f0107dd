package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"knowyourplant/internal/domain"
	"knowyourplant/internal/predict"

	"github.com/google/uuid"
)

var (
	// ErrNoImage indicates that no image bytes were submitted.
	ErrNoImage = errors.New("no image provided")
	// ErrNotImage indicates that the submitted file is not an image.
	ErrNotImage = errors.New("file is not an image")
)

const (
	identifyTimeout     = 30 * time.Second
	defaultHistoryLimit = 50
)

// ScanService runs identifications and records them to the user's history.
type ScanService struct {
	predictor predict.Predictor
	scans     domain.ScanRepository
}

// NewScanService creates a ScanService backed by the given predictor and
// repository.
func NewScanService(p predict.Predictor, scans domain.ScanRepository) *ScanService {
	return &ScanService{predictor: p, scans: scans}
}

// Identify validates the image, runs the predictor under a bounded wait,
// normalizes the result, and appends a history record for the user.
func (s *ScanService) Identify(ctx context.Context, userID int64, image []byte, mime string, capture domain.CaptureType) (*domain.ScanResult, error) {
	if len(image) == 0 {
		return nil, ErrNoImage
	}
	if !strings.HasPrefix(mime, "image/") {
		detected := http.DetectContentType(image)
		if !strings.HasPrefix(detected, "image/") {
			return nil, ErrNotImage
		}
		mime = detected
	}
	if capture == "" {
		capture = domain.CaptureImage
	}

	ctx, cancel := context.WithTimeout(ctx, identifyTimeout)
	defer cancel()

	res, err := s.predictor.Predict(ctx, image, mime)
	if err != nil {
		return nil, fmt.Errorf("identify: %w", err)
	}
	res.Normalize()

	rec := domain.ScanRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		PlantName:   res.PlantName,
		Confidence:  res.Confidence,
		CaptureType: capture,
		ScannedAt:   time.Now(),
	}
	if err := s.scans.AddScan(ctx, rec); err != nil {
		return nil, fmt.Errorf("record scan: %w", err)
	}

	return res, nil
}

// History returns the user's persisted scans, most recent first.
func (s *ScanService) History(ctx context.Context, userID int64, limit int) ([]domain.ScanRecord, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	return s.scans.ListScans(ctx, userID, limit)
}
