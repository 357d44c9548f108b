package match

import (
	"sort"

	"github.com/RoaringBitmap/roaring"

	"bone-renamer/internal/preset"
)

// Candidate is one preset scored against a skeleton.
type Candidate struct {
	Preset string
	// Order is the preset's first appearance across the tables, used for ties.
	Order int
	// Count is the number of distinct bone names matched, summed across tables.
	Count int
	// Total is the number of distinct bone names, summed across tables.
	Total int
	// Matched holds the matched slot indexes per table name.
	Matched map[string]*roaring.Bitmap
}

// Coverage returns Count/Total, or 0 for a preset without bones.
func (c Candidate) Coverage() float64 {
	if c.Total == 0 {
		return 0
	}

	return float64(c.Count) / float64(c.Total)
}

// MatchedSlots returns the matched slot indexes of one table in ascending order.
func (c Candidate) MatchedSlots(table string) []uint32 {
	bm, ok := c.Matched[table]
	if !ok {
		return nil
	}

	return bm.ToArray()
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every preset in set against names. The result is
// sorted by count (descending), then by table order.
func RankCandidates(set preset.Set, names []string) CandidateList {
	present := make(map[string]struct{}, len(names))
	for _, n := range names {
		present[n] = struct{}{}
	}

	var candidates CandidateList

	positions := map[string]int{}

	for _, table := range set {
		for _, p := range table.Presets() {
			pos, seen := positions[p.Name]
			if !seen {
				pos = len(candidates)
				positions[p.Name] = pos
				candidates = append(candidates, Candidate{
					Preset:  p.Name,
					Order:   pos,
					Matched: map[string]*roaring.Bitmap{},
				})
			}

			scoreInto(&candidates[pos], table.Name(), p, present)
		}
	}

	sort.Stable(candidates)

	return candidates
}

// scoreInto adds the matches of one table's preset to c. A bone name
// repeated within the preset counts once, at its first slot.
func scoreInto(c *Candidate, table string, p preset.Preset, present map[string]struct{}) {
	bm := roaring.New()
	seen := make(map[string]struct{}, p.SlotCount())

	for i := range p.SlotCount() {
		name, ok := p.Slot(i)
		if !ok {
			continue
		}

		if _, dup := seen[name]; dup {
			continue
		}

		seen[name] = struct{}{}
		c.Total++

		if _, hit := present[name]; hit {
			bm.Add(uint32(i))
		}
	}

	c.Count += int(bm.GetCardinality())
	c.Matched[table] = bm
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by count descending, then by table order for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Count != c[j].Count {
		return c[i].Count > c[j].Count
	}

	return c[i].Order < c[j].Order
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidate matched anything.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 || c[0].Count == 0 {
		return nil
	}

	return &c[0]
}

// IsTie returns true if the best two candidates matched the same number of slots.
func (c CandidateList) IsTie() bool {
	if len(c) < 2 || c[0].Count == 0 {
		return false
	}

	return c[0].Count == c[1].Count
}
