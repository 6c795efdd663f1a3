package classify

import (
	"regexp"

	"github.com/livp123/loglens/internal/utils/logger"
)

// Level is a named severity class.
type Level string

const (
	LevelError Level = "ERROR"
	LevelWarn  Level = "WARN"
	LevelInfo  Level = "INFO"
	LevelDebug Level = "DEBUG"
	// LevelNone marks a line matching no level; it never appears in a rule set.
	LevelNone Level = ""
)

// Levels lists all severity levels, highest priority first.
var Levels = []Level{LevelError, LevelWarn, LevelInfo, LevelDebug}

// Colors carries the render color per level. Colors are passed through to
// output rendering and never influence matching.
type Colors struct {
	Error string `yaml:"error"`
	Warn  string `yaml:"warn"`
	Info  string `yaml:"info"`
	Debug string `yaml:"debug"`
}

// DefaultColors returns the documented default palette.
func DefaultColors() Colors {
	return Colors{
		Error: "#f44747",
		Warn:  "#ffcc00",
		Info:  "#6796e6",
		Debug: "#b5cea8",
	}
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Matcher is a stateless predicate identifying one surface form of a level.
// The compiled regexp holds no cursor state, so matchers are safe for
// concurrent use and never carry match position across lines.
type Matcher struct {
	re *regexp.Regexp
}

// Match reports whether the line contains this matcher's form.
func (m Matcher) Match(line string) bool {
	return m.re.MatchString(line)
}

// Rule binds one severity level to its ordered matchers and render color.
// Rank 0 is the most severe. Rules are immutable once constructed.
type Rule struct {
	Level    Level
	Rank     int
	Color    string
	matchers []Matcher
}

// RuleSet is the ordered sequence of level rules, highest severity first.
// Constructed once from configuration; safe for concurrent use.
type RuleSet struct {
	rules []Rule
}

// matcher patterns per level: whole-word token alternation, bracketed tag,
// and key[=:]value form (quotes optional). All case-insensitive. The table
// is fixed; configuration only supplies colors.
var levelPatterns = map[Level][]string{
	LevelError: {
		`(?i)\b(?:ERROR|FATAL|CRITICAL|SEVERE)\b`,
		`(?i)\[\s*ERROR\s*\]`,
		`(?i)\blevel\s*[=:]\s*"?error"?`,
	},
	LevelWarn: {
		`(?i)\b(?:WARN|WARNING)\b`,
		`(?i)\[\s*WARN(?:ING)?\s*\]`,
		`(?i)\blevel\s*[=:]\s*"?warn(?:ing)?"?`,
	},
	LevelInfo: {
		`(?i)\bINFO\b`,
		`(?i)\[\s*INFO\s*\]`,
		`(?i)\blevel\s*[=:]\s*"?info"?`,
	},
	LevelDebug: {
		`(?i)\b(?:DEBUG|TRACE|VERBOSE)\b`,
		`(?i)\[\s*DEBUG\s*\]`,
		`(?i)\blevel\s*[=:]\s*"?debug"?`,
	},
}

// NewRuleSet builds the fixed rule table, taking render colors from cfg.
// Malformed color values fall back to the documented defaults; that recovery
// is local and logged, never surfaced as an error.
func NewRuleSet(colors Colors) *RuleSet {
	defaults := DefaultColors()
	log := logger.Get(nil)

	pick := func(name, value, fallback string) string {
		if value == "" {
			return fallback
		}
		if !hexColorRe.MatchString(value) {
			log.Warnf("invalid %s color %q, using default %s", name, value, fallback)
			return fallback
		}
		return value
	}

	chosen := map[Level]string{
		LevelError: pick("error", colors.Error, defaults.Error),
		LevelWarn:  pick("warn", colors.Warn, defaults.Warn),
		LevelInfo:  pick("info", colors.Info, defaults.Info),
		LevelDebug: pick("debug", colors.Debug, defaults.Debug),
	}

	rs := &RuleSet{rules: make([]Rule, 0, len(Levels))}
	for rank, level := range Levels {
		rule := Rule{Level: level, Rank: rank, Color: chosen[level]}
		for _, pat := range levelPatterns[level] {
			rule.matchers = append(rule.matchers, Matcher{re: regexp.MustCompile(pat)})
		}
		rs.rules = append(rs.rules, rule)
	}
	return rs
}

// Rules returns the ordered rules, highest severity first.
func (rs *RuleSet) Rules() []Rule {
	return rs.rules
}

// Color returns the render color for a level, or "" for an unknown level.
func (rs *RuleSet) Color(level Level) string {
	for _, r := range rs.rules {
		if r.Level == level {
			return r.Color
		}
	}
	return ""
}

// matches reports whether any of the rule's matchers accepts the line.
// The first matching matcher short-circuits the rest for this level.
func (r *Rule) matches(line string) bool {
	for _, m := range r.matchers {
		if m.Match(line) {
			return true
		}
	}
	return false
}
