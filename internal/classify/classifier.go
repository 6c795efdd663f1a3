package classify

// Result is the classification of a single line. Levels is the non-exclusive
// match set in priority order; a line may belong to several levels at once.
// Primary is the highest-priority matched level and is the only one that
// participates in aggregate counting; it is LevelNone when nothing matched.
// The set/primary duality is intentional: annotation uses the set, counting
// uses the primary.
type Result struct {
	Levels  []Level
	Primary Level
}

// Has reports whether the level is in the match set.
func (r Result) Has(level Level) bool {
	for _, l := range r.Levels {
		if l == level {
			return true
		}
	}
	return false
}

// Classifier assigns severity levels to single lines of text.
// Pure and deterministic; safe for concurrent use.
type Classifier struct {
	rules *RuleSet
}

// NewClassifier creates a Classifier over the given rule set.
func NewClassifier(rules *RuleSet) *Classifier {
	return &Classifier{rules: rules}
}

// Classify tests every level independently against the line. Classification
// is total: arbitrary text yields a valid Result, possibly with no levels.
func (c *Classifier) Classify(line string) Result {
	var res Result
	for i := range c.rules.rules {
		rule := &c.rules.rules[i]
		if rule.matches(line) {
			res.Levels = append(res.Levels, rule.Level)
			if res.Primary == LevelNone {
				res.Primary = rule.Level
			}
		}
	}
	return res
}
