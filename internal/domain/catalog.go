package domain

import "time"

// CatalogEntry is one row of the demo dashboard catalog. The catalog is
// immutable reference data; views derive projections from it and never
// mutate it.
type CatalogEntry struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	ScientificName string      `json:"scientific_name"`
	Confidence     float64     `json:"confidence"`
	Date           time.Time   `json:"date"`
	CaptureType    CaptureType `json:"capture_type"`
	IsToxic        bool        `json:"is_toxic"`
	Tags           []string    `json:"tags"`
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// ReferenceCatalog returns the demo catalog shown on the dashboard. Callers
// get a fresh slice each time, the entries themselves are shared and must be
// treated as read-only.
func ReferenceCatalog() []CatalogEntry {
	return []CatalogEntry{
		{ID: 1, Name: "Monstera Deliciosa", ScientificName: "Monstera deliciosa", Confidence: 0.94, Date: day("2026-02-18"), CaptureType: CaptureImage, IsToxic: true, Tags: []string{"Tropical", "Houseplant"}},
		{ID: 2, Name: "Peace Lily", ScientificName: "Spathiphyllum wallisii", Confidence: 0.88, Date: day("2026-02-17"), CaptureType: CaptureLive, IsToxic: true, Tags: []string{"Flowering", "Indoor"}},
		{ID: 3, Name: "Snake Plant", ScientificName: "Sansevieria trifasciata", Confidence: 0.97, Date: day("2026-02-17"), CaptureType: CaptureImage, IsToxic: false, Tags: []string{"Succulent", "Air Purifier"}},
		{ID: 4, Name: "Fiddle Leaf Fig", ScientificName: "Ficus lyrata", Confidence: 0.82, Date: day("2026-02-16"), CaptureType: CaptureImage, IsToxic: true, Tags: []string{"Tropical", "Statement"}},
		{ID: 5, Name: "Pothos", ScientificName: "Epipremnum aureum", Confidence: 0.91, Date: day("2026-02-15"), CaptureType: CaptureLive, IsToxic: true, Tags: []string{"Trailing", "Easy Care"}},
		{ID: 6, Name: "Aloe Vera", ScientificName: "Aloe barbadensis miller", Confidence: 0.99, Date: day("2026-02-14"), CaptureType: CaptureImage, IsToxic: false, Tags: []string{"Succulent", "Medicinal"}},
		{ID: 7, Name: "ZZ Plant", ScientificName: "Zamioculcas zamiifolia", Confidence: 0.85, Date: day("2026-02-13"), CaptureType: CaptureImage, IsToxic: true, Tags: []string{"Low Light", "Drought Tolerant"}},
		{ID: 8, Name: "Bird of Paradise", ScientificName: "Strelitzia reginae", Confidence: 0.78, Date: day("2026-02-12"), CaptureType: CaptureLive, IsToxic: false, Tags: []string{"Tropical", "Flowering"}},
		{ID: 9, Name: "Rubber Plant", ScientificName: "Ficus elastica", Confidence: 0.90, Date: day("2026-02-11"), CaptureType: CaptureImage, IsToxic: true, Tags: []string{"Tropical", "Bold Leaves"}},
	}
}
