package match

import (
	"errors"

	"bone-renamer/internal/preset"
)

// Detection is the result of preset detection.
type Detection struct {
	// Preset is empty when nothing matched.
	Preset string
	Count  int
	// Candidates holds every preset, ranked.
	Candidates CandidateList
}

// ErrNoMatch reports that no preset matched any of the skeleton's names.
var ErrNoMatch = errors.New("no preset matches the skeleton")

// Matched reports whether a preset was detected.
func (d Detection) Matched() bool {
	return d.Preset != ""
}

// Err returns ErrNoMatch when nothing was detected.
func (d Detection) Err() error {
	if !d.Matched() {
		return ErrNoMatch
	}

	return nil
}

// Detect returns the preset of set that best matches names. The set is
// never modified and the same inputs always give the same result.
func Detect(set preset.Set, names []string) Detection {
	candidates := RankCandidates(set, names)

	best := candidates.Best()
	if best == nil {
		return Detection{Candidates: candidates}
	}

	return Detection{
		Preset:     best.Preset,
		Count:      best.Count,
		Candidates: candidates,
	}
}

// DetectTable is Detect for a single table.
func DetectTable(table *preset.Table, names []string) Detection {
	return Detect(preset.Set{table}, names)
}
