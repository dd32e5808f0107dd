package predict

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"knowyourplant/internal/domain"
)

// ErrEmptyImage is returned when no image bytes were supplied.
var ErrEmptyImage = errors.New("empty image")

// demoPlants is the offline identification catalog. Entries carry the full
// care metadata an on-screen result needs.
var demoPlants = []domain.ScanResult{
	{
		PlantName:      "Monstera Deliciosa",
		ScientificName: "Monstera deliciosa",
		Confidence:     0.94,
		Description:    "A popular tropical houseplant known for its large, glossy, split leaves. Native to the tropical forests of southern Mexico and Central America.",
		Habitat:        "Tropical rainforests of Central America, Mexico",
		Uses:           []string{"Air purification", "Interior decoration", "Feng shui"},
		CareTips: []domain.CareTip{
			{Icon: "water", Label: "Water", Value: "Every 1-2 weeks"},
			{Icon: "light", Label: "Light", Value: "Bright indirect"},
			{Icon: "temp", Label: "Temp", Value: "18-30C"},
			{Icon: "humidity", Label: "Humidity", Value: "High (60%+)"},
		},
		IsToxic: true,
	},
	{
		PlantName:      "Peace Lily",
		ScientificName: "Spathiphyllum wallisii",
		Confidence:     0.88,
		Description:    "An elegant flowering plant with glossy dark green leaves and white blooms. One of the best indoor air purifiers.",
		Habitat:        "Tropical Americas and southeastern Asia",
		Uses:           []string{"Air purification", "Ornamental", "Bedroom plant"},
		CareTips: []domain.CareTip{
			{Icon: "water", Label: "Water", Value: "Weekly"},
			{Icon: "light", Label: "Light", Value: "Low to medium"},
			{Icon: "temp", Label: "Temp", Value: "18-26C"},
			{Icon: "humidity", Label: "Humidity", Value: "Medium"},
		},
		IsToxic: true,
	},
	{
		PlantName:      "Snake Plant",
		ScientificName: "Dracaena trifasciata",
		Confidence:     0.91,
		Description:    "A hardy, drought-tolerant succulent with stiff, upright leaves. Excellent air purifier that converts CO2 to oxygen at night.",
		Habitat:        "West Africa, Nigeria to Congo",
		Uses:           []string{"Air purification", "Low-maintenance decor", "Bedroom plant"},
		CareTips: []domain.CareTip{
			{Icon: "water", Label: "Water", Value: "Every 2-3 weeks"},
			{Icon: "light", Label: "Light", Value: "Low to bright"},
			{Icon: "temp", Label: "Temp", Value: "15-30C"},
			{Icon: "humidity", Label: "Humidity", Value: "Low"},
		},
		IsToxic: false,
	},
}

// Mock is the offline Predictor. It picks a demo plant pseudo-randomly,
// optionally after a simulated analysis delay.
type Mock struct {
	rng   *rand.Rand
	delay time.Duration
}

// NewMock creates a Mock seeded deterministically for tests.
func NewMock(seed int64) *Mock {
	return &Mock{rng: rand.New(rand.NewSource(seed))}
}

// WithDelay sets a simulated analysis delay and returns the Mock.
func (m *Mock) WithDelay(d time.Duration) *Mock {
	m.delay = d
	return m
}

// Predict returns one of the demo plants. It still validates its input so
// offline behavior matches the remote service's contract.
func (m *Mock) Predict(ctx context.Context, image []byte, mime string) (*domain.ScanResult, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if mime != "" && !strings.HasPrefix(mime, "image/") {
		return nil, errors.New("unsupported content type: " + mime)
	}
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	res := demoPlants[m.rng.Intn(len(demoPlants))]
	res.Normalize()
	return &res, nil
}
