package predict

import (
	"strings"

	"knowyourplant/internal/domain"
)

// speciesInfo carries display metadata for one crop species the upstream
// model can report.
type speciesInfo struct {
	scientific string
	habitat    string
	uses       []string
	care       []domain.CareTip
	toxic      bool
}

// speciesTable covers the crops of the upstream model's label set, keyed by
// the species half of the label.
var speciesTable = map[string]speciesInfo{
	"Apple": {
		scientific: "Malus domestica",
		habitat:    "Temperate orchards worldwide",
		uses:       []string{"Edible fruit", "Orchard crop"},
		care:       orchardCare("Weekly in season", "Full sun"),
	},
	"Blueberry": {
		scientific: "Vaccinium corymbosum",
		habitat:    "Acidic soils of North America",
		uses:       []string{"Edible fruit", "Garden shrub"},
		care:       orchardCare("Keep soil moist", "Full sun"),
	},
	"Cherry (including sour)": {
		scientific: "Prunus avium",
		habitat:    "Temperate Europe and Asia",
		uses:       []string{"Edible fruit", "Ornamental blossom"},
		care:       orchardCare("Weekly in season", "Full sun"),
	},
	"Corn (maize)": {
		scientific: "Zea mays",
		habitat:    "Cultivated fields worldwide",
		uses:       []string{"Staple crop", "Animal feed"},
		care:       orchardCare("1-2 times weekly", "Full sun"),
	},
	"Grape": {
		scientific: "Vitis vinifera",
		habitat:    "Temperate vineyards",
		uses:       []string{"Edible fruit", "Wine production"},
		care:       orchardCare("Deep watering biweekly", "Full sun"),
	},
	"Orange": {
		scientific: "Citrus sinensis",
		habitat:    "Subtropical groves",
		uses:       []string{"Edible fruit", "Essential oils"},
		care:       orchardCare("Weekly", "Full sun"),
	},
	"Peach": {
		scientific: "Prunus persica",
		habitat:    "Temperate orchards",
		uses:       []string{"Edible fruit"},
		care:       orchardCare("Weekly in season", "Full sun"),
	},
	"Pepper, bell": {
		scientific: "Capsicum annuum",
		habitat:    "Warm gardens and greenhouses",
		uses:       []string{"Edible vegetable"},
		care:       orchardCare("Keep soil moist", "Full sun"),
	},
	"Potato": {
		scientific: "Solanum tuberosum",
		habitat:    "Cultivated fields, Andean origin",
		uses:       []string{"Staple crop"},
		care:       orchardCare("Regular, even moisture", "Full sun"),
		toxic:      true, // foliage and green tubers
	},
	"Raspberry": {
		scientific: "Rubus idaeus",
		habitat:    "Temperate hedgerows and gardens",
		uses:       []string{"Edible fruit"},
		care:       orchardCare("Weekly", "Full sun to partial shade"),
	},
	"Soybean": {
		scientific: "Glycine max",
		habitat:    "Cultivated fields, East Asian origin",
		uses:       []string{"Protein crop", "Oil production"},
		care:       orchardCare("1-2 times weekly", "Full sun"),
	},
	"Squash": {
		scientific: "Cucurbita pepo",
		habitat:    "Warm gardens worldwide",
		uses:       []string{"Edible vegetable"},
		care:       orchardCare("Deep weekly watering", "Full sun"),
	},
	"Strawberry": {
		scientific: "Fragaria x ananassa",
		habitat:    "Temperate gardens and fields",
		uses:       []string{"Edible fruit"},
		care:       orchardCare("Keep soil moist", "Full sun"),
	},
	"Tomato": {
		scientific: "Solanum lycopersicum",
		habitat:    "Warm gardens, South American origin",
		uses:       []string{"Edible vegetable"},
		care:       orchardCare("Regular, even moisture", "Full sun"),
		toxic:      true, // foliage
	},
}

func orchardCare(water, light string) []domain.CareTip {
	return []domain.CareTip{
		{Icon: "water", Label: "Water", Value: water},
		{Icon: "light", Label: "Light", Value: light},
	}
}

// resultFromLabel maps an upstream model label such as
// "Tomato___Late_blight" to a display-ready ScanResult.
func resultFromLabel(label string, confidence float64) *domain.ScanResult {
	species, condition := splitLabel(label)

	res := &domain.ScanResult{
		PlantName:  species,
		Confidence: confidence,
	}

	if info, ok := speciesTable[species]; ok {
		res.ScientificName = info.scientific
		res.Habitat = info.habitat
		res.Uses = info.uses
		res.CareTips = info.care
		res.IsToxic = info.toxic
	}

	if condition == "healthy" {
		res.Description = species + " leaf, no signs of disease."
	} else if condition != "" {
		res.PlantName = species + " (" + condition + ")"
		res.Description = species + " leaf showing signs of " + condition + "."
	}

	res.Normalize()
	return res
}

// splitLabel separates the species and condition halves of a label and
// restores spaces: "Pepper,_bell___Bacterial_spot" becomes
// ("Pepper, bell", "Bacterial spot").
func splitLabel(label string) (species, condition string) {
	parts := strings.SplitN(label, "___", 2)
	species = strings.TrimSpace(strings.ReplaceAll(parts[0], "_", " "))
	if len(parts) == 2 {
		condition = strings.TrimSpace(strings.ReplaceAll(parts[1], "_", " "))
	}
	return species, condition
}
