package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/nightwatch-ai/nightwatch/internal/models"
	"github.com/nightwatch-ai/nightwatch/internal/normalize"
)

// DatasetSize is the number of synthetic incidents in the demo dataset.
const DatasetSize = 100

// datasetSeed fixes the generator so every process derives the same
// dataset. Seed IDs are stable, so reseeding upserts in place.
const datasetSeed = 7

var locations = []string{
	"Vasundhara Enclave", "Metro Station", "Bus Stop", "College Area",
	"Marketplace", "Residential Area", "Railway Station", "Park",
	"Shopping Mall", "Main Road",
}

type weighted struct {
	value  string
	weight float64
}

var incidentTypes = []weighted{
	{"Harassment", 0.4},
	{"Stalking", 0.2},
	{"Theft", 0.25},
	{"Assault", 0.1},
	{"Verbal Abuse", 0.05},
}

var severities = []weighted{
	{string(models.SeverityLow), 0.3},
	{string(models.SeverityMedium), 0.4},
	{string(models.SeverityHigh), 0.3},
}

// Incidents returns the synthetic demo dataset: DatasetSize incidents
// spread over one year across the fixed location table, with weighted
// incident types and severities. Deterministic across calls and processes.
func Incidents() []models.Incident {
	rng := rand.New(rand.NewSource(datasetSeed))
	base := time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC)

	out := make([]models.Incident, 0, DatasetSize)
	for i := 1; i <= DatasetSize; i++ {
		loc := locations[rng.Intn(len(locations))]
		itype := pickWeighted(rng, incidentTypes)
		sev := models.Severity(pickWeighted(rng, severities))

		ts := base.Add(time.Duration(rng.Intn(365*24))*time.Hour +
			time.Duration(rng.Intn(60))*time.Minute)

		inc := models.Incident{
			ID:               fmt.Sprintf("seed-%03d", i),
			Text:             fmt.Sprintf("%s reported near %s at %s.", itype, normalize.Text(loc), ts.Format("15:04")),
			Location:         normalize.Location(loc),
			OriginalLocation: loc,
			Time:             ts.Format(models.TimeLayout),
			Severity:         sev,
			SOS:              sev == models.SeverityHigh,
		}
		out = append(out, inc)
	}
	return out
}

func pickWeighted(rng *rand.Rand, table []weighted) string {
	var total float64
	for _, w := range table {
		total += w.weight
	}
	r := rng.Float64() * total
	for _, w := range table {
		r -= w.weight
		if r < 0 {
			return w.value
		}
	}
	return table[len(table)-1].value
}
