package match

import (
	"sort"

	"datamapper/internal/common"
	"datamapper/internal/document"
)

// Confidence thresholds for auto-accepting a suggestion.
const (
	DefaultMinScore           = 0.7
	DefaultMinGap             = 0.15
	DefaultAmbiguityThreshold = 0.1
)

const (
	nameWeight  = 0.6
	shapeWeight = 0.4
)

// Candidate is one source field suggested for a target field.
type Candidate struct {
	Source *document.Field
	Target *document.Field

	NameScore float64
	Compat    CompatibilityResult
	Score     float64
}

// CandidateList is sorted by descending Score.
type CandidateList []Candidate

// RankCandidates scores every source field against target.
func RankCandidates(target *document.Field, sources []*document.Field) CandidateList {
	candidates := make(CandidateList, 0, len(sources))

	for _, src := range sources {
		name := NameScore(src.Name, target.Name)
		compat := ScoreCompatibility(src, target)

		candidates = append(candidates, Candidate{
			Source:    src,
			Target:    target,
			NameScore: name,
			Compat:    compat,
			Score:     combinedScore(name, compat.Compatibility),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// SourceFields lists the fields of docs down to maxDepth levels, resolving
// type fragments on the way. Primitive documents contribute nothing.
func SourceFields(maxDepth int, docs ...*document.Document) []*document.Field {
	var out []*document.Field

	var walk func(fields []*document.Field, depth int)
	walk = func(fields []*document.Field, depth int) {
		if depth >= maxDepth {
			return
		}

		for _, f := range fields {
			out = append(out, f)
			walk(document.ResolvedFields(f), depth+1)
		}
	}

	for _, doc := range docs {
		if doc.HasSchema() {
			walk(doc.Fields, 0)
		}
	}

	return out
}

func combinedScore(name float64, compat Compatibility) float64 {
	return name*nameWeight + compat.weight()*shapeWeight
}

func (c CandidateList) Len() int      { return len(c) }
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less orders by score, then by source path for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Source.Path() < c[j].Source.Path()
}

// Top returns at most n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil.
func (c CandidateList) Best() *Candidate {
	if common.IsEmpty(c) {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the two best candidates are closer than
// threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if !common.IsMultiple(c) {
		return false
	}

	return c[0].Score-c[1].Score < threshold
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// HighConfidence returns the best candidate if it is good enough and
// clearly ahead of the runner-up.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	best := c.Best()
	if best == nil || best.Score < minScore || best.Compat.Compatibility < NeedsTransform {
		return nil
	}

	if common.IsMultiple(c) && c[0].Score-c[1].Score < minGap {
		return nil
	}

	return best
}
