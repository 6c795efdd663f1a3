package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuleSetOrder(t *testing.T) {
	rs := NewRuleSet(DefaultColors())
	rules := rs.Rules()
	require.Len(t, rules, 4)

	assert.Equal(t, LevelError, rules[0].Level)
	assert.Equal(t, LevelWarn, rules[1].Level)
	assert.Equal(t, LevelInfo, rules[2].Level)
	assert.Equal(t, LevelDebug, rules[3].Level)

	for i, r := range rules {
		assert.Equal(t, i, r.Rank)
		assert.Len(t, r.matchers, 3)
	}
}

func TestNewRuleSetColors(t *testing.T) {
	t.Run("custom colors kept", func(t *testing.T) {
		rs := NewRuleSet(Colors{Error: "#ff0000", Warn: "#00ff00", Info: "#0000ff", Debug: "#cccccc"})
		assert.Equal(t, "#ff0000", rs.Color(LevelError))
		assert.Equal(t, "#00ff00", rs.Color(LevelWarn))
		assert.Equal(t, "#0000ff", rs.Color(LevelInfo))
		assert.Equal(t, "#cccccc", rs.Color(LevelDebug))
	})

	t.Run("malformed colors fall back to defaults", func(t *testing.T) {
		rs := NewRuleSet(Colors{Error: "red", Warn: "#12", Info: "#gggggg", Debug: ""})
		defaults := DefaultColors()
		assert.Equal(t, defaults.Error, rs.Color(LevelError))
		assert.Equal(t, defaults.Warn, rs.Color(LevelWarn))
		assert.Equal(t, defaults.Info, rs.Color(LevelInfo))
		assert.Equal(t, defaults.Debug, rs.Color(LevelDebug))
	})

	t.Run("unknown level has no color", func(t *testing.T) {
		rs := NewRuleSet(DefaultColors())
		assert.Equal(t, "", rs.Color(LevelNone))
	})
}

func TestMatcherForms(t *testing.T) {
	rs := NewRuleSet(DefaultColors())
	rules := rs.Rules()
	byLevel := make(map[Level]*Rule)
	for i := range rules {
		byLevel[rules[i].Level] = &rules[i]
	}

	tests := []struct {
		name  string
		level Level
		line  string
		want  bool
	}{
		{"word error", LevelError, "2024 ERROR db down", true},
		{"word fatal lowercase", LevelError, "fatal: disk gone", true},
		{"word critical", LevelError, "CRITICAL condition", true},
		{"word severe", LevelError, "Severe degradation", true},
		{"bracket error", LevelError, "[ERROR] boom", true},
		{"bracket error padded", LevelError, "[ error ] boom", true},
		{"kv error", LevelError, `ts=1 level=error msg=x`, true},
		{"kv error colon quoted", LevelError, `level:"error" msg=x`, true},
		{"no match inside larger word", LevelError, "terrors everywhere", false},
		{"word warn", LevelWarn, "WARN high latency", true},
		{"word warning", LevelWarn, "Warning: low disk", true},
		{"bracket warning", LevelWarn, "[WARNING] retry", true},
		{"kv warning", LevelWarn, "level=warning", true},
		{"word info", LevelInfo, "INFO started", true},
		{"kv info", LevelInfo, "level:info", true},
		{"word debug", LevelDebug, "DEBUG cache miss", true},
		{"word trace", LevelDebug, "trace id=9", true},
		{"word verbose", LevelDebug, "VERBOSE output on", true},
		{"plain text matches nothing", LevelError, "just a plain line", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, byLevel[tt.level].matches(tt.line))
		})
	}
}
