package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// PlanRenderer renders a plan and its lint result
type PlanRenderer struct {
	out io.Writer
}

// NewPlanRenderer creates a new plan renderer
func NewPlanRenderer(out io.Writer) *PlanRenderer {
	return &PlanRenderer{out: out}
}

// Render implements Renderer
func (r *PlanRenderer) Render(result *usecase.ShowPlanResult) error {
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("📜 Plan %s (%d steps)", result.Plan.Name, len(result.Steps)))
	fmt.Fprintln(r.out)

	t := newTable()
	t.AppendHeader(table.Row{"#", "Step", "Depends On", "Artifact"})
	for _, step := range result.Steps {
		deps := faintStyle.Sprint("-")
		if len(step.DependsOn) > 0 {
			names := make([]string, len(step.DependsOn))
			for i, dep := range step.DependsOn {
				names[i] = string(dep)
			}
			deps = strings.Join(names, ", ")
		}

		artifact := faintStyle.Sprint("unchecked")
		if step.HasArtifact != nil {
			if *step.HasArtifact {
				artifact = "✓"
			} else {
				artifact = publicStyle.Sprint("missing")
			}
		}
		t.AppendRow(table.Row{step.Index, nameStyle.Sprint(step.Step.String()), deps, artifact})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)

	if result.Valid() {
		fmt.Fprintln(r.out, FormatSuccess("Plan is valid"))
		return nil
	}
	for _, problem := range result.Problems {
		fmt.Fprintln(r.out, FormatError(problem.Error()))
	}
	return nil
}

var _ Renderer[*usecase.ShowPlanResult] = (*PlanRenderer)(nil)
