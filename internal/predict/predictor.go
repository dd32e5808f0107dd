// Package predict provides plant-identification backends. A Predictor takes
// raw image bytes and returns a normalized ScanResult; implementations cover
// the remote model service and an offline demo catalog.
package predict

import (
	"context"
	"fmt"

	"knowyourplant/internal/domain"
)

// Predictor identifies the plant in a single image.
type Predictor interface {
	Predict(ctx context.Context, image []byte, mime string) (*domain.ScanResult, error)
}

type fallbackPredictor struct {
	primary  Predictor
	fallback Predictor
}

// WithFallback returns a Predictor that consults primary and, when it fails,
// degrades to fallback. Degradation is an explicit wiring decision made
// here; callers that want hard failures use the primary alone.
func WithFallback(primary, fallback Predictor) Predictor {
	return &fallbackPredictor{primary: primary, fallback: fallback}
}

func (p *fallbackPredictor) Predict(ctx context.Context, image []byte, mime string) (*domain.ScanResult, error) {
	res, err := p.primary.Predict(ctx, image, mime)
	if err == nil {
		return res, nil
	}
	res, ferr := p.fallback.Predict(ctx, image, mime)
	if ferr != nil {
		return nil, fmt.Errorf("primary failed (%v), fallback failed: %w", err, ferr)
	}
	return res, nil
}
