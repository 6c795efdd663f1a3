package classify

// LineRange is an inclusive range of zero-based line numbers.
type LineRange struct {
	Start int
	End   int
}

// ScanResult aggregates one pass over a document. Ranges holds per-level
// annotation ranges built from non-exclusive set membership, so a line may
// appear under several levels. Counts is exclusive: each line increments only
// its primary level, and unmatched lines are left uncounted.
type ScanResult struct {
	Ranges map[Level][]LineRange
	Counts map[Level]int
}

// Total returns the sum of all per-level counts.
func (r *ScanResult) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// Scanner walks a document's lines and aggregates classification results.
type Scanner struct {
	cls *Classifier
}

// NewScanner creates a Scanner over the given classifier.
func NewScanner(cls *Classifier) *Scanner {
	return &Scanner{cls: cls}
}

// Scan classifies every line in a single pass. Adjacent lines matching the
// same level coalesce into one range. No state is carried across lines beyond
// the accumulators, so cost is O(lines x matchers).
func (s *Scanner) Scan(lines []string) *ScanResult {
	res := &ScanResult{
		Ranges: make(map[Level][]LineRange, len(Levels)),
		Counts: make(map[Level]int, len(Levels)),
	}
	for _, level := range Levels {
		res.Counts[level] = 0
	}

	for i, line := range lines {
		cr := s.cls.Classify(line)
		for _, level := range cr.Levels {
			ranges := res.Ranges[level]
			if n := len(ranges); n > 0 && ranges[n-1].End == i-1 {
				ranges[n-1].End = i
			} else {
				ranges = append(ranges, LineRange{Start: i, End: i})
			}
			res.Ranges[level] = ranges
		}
		if cr.Primary != LevelNone {
			res.Counts[cr.Primary]++
		}
	}
	return res
}
