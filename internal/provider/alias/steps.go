package alias

import (
	"fmt"

	"github.com/espshell/espshell/internal/domain/compiler"
	"github.com/espshell/espshell/internal/validation"
)

// AliasStep records one shell alias in the session environment.
// Aliases only live for the composed shell session, so the step
// always needs to apply.
type AliasStep struct {
	name    string
	command string
}

func NewAliasStep(name, command string) *AliasStep {
	return &AliasStep{name: name, command: command}
}

func (s *AliasStep) ID() compiler.StepID {
	return compiler.MustNewStepID(fmt.Sprintf("alias:%s", s.name))
}

func (s *AliasStep) DependsOn() []compiler.StepID {
	return nil
}

func (s *AliasStep) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	return compiler.StatusNeedsApply, nil
}

func (s *AliasStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return compiler.NewDiff(compiler.ActionConfigure, "alias", s.name,
		fmt.Sprintf("alias %s=%q", s.name, s.command)), nil
}

func (s *AliasStep) Apply(ctx compiler.RunContext) error {
	if err := validation.ValidateAliasName(s.name); err != nil {
		return err
	}
	ctx.Session().SetAlias(s.name, s.command)
	return nil
}

func (s *AliasStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		fmt.Sprintf("Register the %s alias", s.name),
		fmt.Sprintf("Adds alias %s for %q to the composed shell snippet.", s.name, s.command),
		nil,
	)
}
