package rule

import (
	"dailyq/internal/question"
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Rule represents an eligibility rule applied to questions before ranking.
// The When field contains a CEL expression that must hold for a question to be kept.
// The CEL program is compiled when Init is called and used during evaluation.
type Rule struct {
	// Name — short label used in logs.
	Name string `yaml:"name"`
	// When — CEL expression defining the eligibility condition.
	// Must return a boolean value.
	When string `yaml:"when"`
	// program — compiled CEL program used to execute the condition.
	program cel.Program
}

// Init compiles the string expression in the When field into an executable CEL program
// using the provided env environment.
// In case of syntax or semantic errors, or a non-boolean result type, returns an error.
// After successful initialization, the rule is ready for use in Eval.
func (r *Rule) Init(env *cel.Env) error {
	if r.When == "" {
		return fmt.Errorf("rule %q: empty condition", r.Name)
	}

	ast, iss := env.Parse(r.When)
	if iss.Err() != nil {
		return iss.Err()
	}

	checked, iss := env.Check(ast)
	if iss.Err() != nil {
		return iss.Err()
	}

	if !checked.OutputType().IsExactType(cel.BoolType) {
		return fmt.Errorf("rule %q: condition must be boolean, got %s", r.Name, checked.OutputType())
	}

	var err error
	r.program, err = env.Program(checked)
	if err != nil {
		return err
	}

	return nil
}

// Eval executes the compiled rule on q and reports whether q is eligible.
// Execution errors are returned to the caller, which decides how to treat the question.
func (r *Rule) Eval(q question.Question) (bool, error) {
	if r.program == nil {
		return false, errors.New("rule is not initialized")
	}

	result, _, err := r.program.Eval(q.Activation())
	if err != nil {
		return false, err
	}

	eligible, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule %q: non-boolean result %v", r.Name, result.Value())
	}

	return eligible, nil
}
