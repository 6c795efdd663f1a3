package classify

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	lerrors "github.com/livp123/loglens/pkg/errors"
)

// FilterEnv is the environment a filter expression is evaluated against.
type FilterEnv struct {
	// Line is the raw log line.
	Line string
	// Source is the file the line came from, or "" for stdin.
	Source string
	// Primary is the primary level name, or "" when nothing matched.
	Primary string
	// Levels are the names of all matched levels.
	Levels []string
}

// Filter is a compiled line filter expression, e.g.
// `Primary == "ERROR" and Line contains "db"`. A nil Filter accepts all lines.
type Filter struct {
	src     string
	program *vm.Program
}

// CompileFilter compiles a filter expression. The empty string yields a nil
// filter, which accepts everything.
func CompileFilter(src string) (*Filter, error) {
	if src == "" {
		return nil, nil
	}
	program, err := expr.Compile(src, expr.Env(FilterEnv{}), expr.AsBool())
	if err != nil {
		return nil, lerrors.NewFilterError(src, err)
	}
	return &Filter{src: src, program: program}, nil
}

// Accept evaluates the filter for one classified line. Evaluation failures
// reject the line rather than aborting the stream.
func (f *Filter) Accept(line, source string, res Result) bool {
	if f == nil {
		return true
	}
	env := FilterEnv{
		Line:    line,
		Source:  source,
		Primary: string(res.Primary),
		Levels:  make([]string, 0, len(res.Levels)),
	}
	for _, l := range res.Levels {
		env.Levels = append(env.Levels, string(l))
	}
	output, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}
	accepted, ok := output.(bool)
	return ok && accepted
}

// String returns the filter source, or "" for a nil filter.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.src
}
