package cli

import (
	"fmt"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/cli/render"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/spf13/cobra"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect deployment plans",
		Long: `Inspect deployment plans without touching any network.

A plan reference is a built-in plan (default, system, storage, registry) or the
path of a YAML plan file. Without a reference the configured plan is used.`,
	}

	cmd.AddCommand(newPlanShowCmd())
	cmd.AddCommand(newPlanValidateCmd())

	return cmd
}

func newPlanShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [plan]",
		Short: "Show the steps of a plan and what each one depends on",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkArtifacts, _ := cmd.Flags().GetBool("check-artifacts")
			result, err := runShowPlan(cmd, args, checkArtifacts)
			if err != nil {
				return err
			}

			app, _ := getApp(cmd)
			if app.Config.JSON {
				return render.WriteJSON(cmd.OutOrStdout(), planOutput(result))
			}
			return render.NewPlanRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
	cmd.Flags().Bool("check-artifacts", false, "Also check that every contract has a compiled artifact")
	return cmd
}

func newPlanValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan]",
		Short: "Check references and artifacts of a plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runShowPlan(cmd, args, true)
			if err != nil {
				return err
			}

			app, _ := getApp(cmd)
			if app.Config.JSON {
				if err := render.WriteJSON(cmd.OutOrStdout(), planOutput(result)); err != nil {
					return err
				}
			} else if err := render.NewPlanRenderer(cmd.OutOrStdout()).Render(result); err != nil {
				return err
			}

			if !result.Valid() {
				return &reportedError{err: fmt.Errorf("plan %s has %d problems", result.Plan.Name, len(result.Problems))}
			}
			return nil
		},
	}
}

func runShowPlan(cmd *cobra.Command, args []string, checkArtifacts bool) (*usecase.ShowPlanResult, error) {
	app, err := getApp(cmd)
	if err != nil {
		return nil, err
	}

	params := usecase.ShowPlanParams{CheckArtifacts: checkArtifacts}
	if len(args) > 0 {
		params.Plan = args[0]
	}
	return app.ShowPlan.Run(cmd.Context(), params)
}

type planStepOutput struct {
	Index       int      `json:"index"`
	Contract    string   `json:"contract"`
	Step        string   `json:"step"`
	DependsOn   []string `json:"dependsOn"`
	HasArtifact *bool    `json:"hasArtifact,omitempty"`
}

type planJSON struct {
	Name     string           `json:"name"`
	Steps    []planStepOutput `json:"steps"`
	Problems []string         `json:"problems"`
}

func planOutput(result *usecase.ShowPlanResult) planJSON {
	out := planJSON{
		Name:     result.Plan.Name,
		Steps:    make([]planStepOutput, len(result.Steps)),
		Problems: make([]string, len(result.Problems)),
	}
	for i, step := range result.Steps {
		deps := make([]string, len(step.DependsOn))
		for j, dep := range step.DependsOn {
			deps[j] = string(dep)
		}
		out.Steps[i] = planStepOutput{
			Index:       step.Index,
			Contract:    string(step.Step.Contract),
			Step:        step.Step.String(),
			DependsOn:   deps,
			HasArtifact: step.HasArtifact,
		}
	}
	for i, problem := range result.Problems {
		out.Problems[i] = problem.Error()
	}
	return out
}
