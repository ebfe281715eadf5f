package render

import (
	"fmt"
	"io"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
)

// DeployRenderer renders the outcome of a deployment run
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render lists what was deployed and, for failed runs, where the run stopped.
// Contracts deployed before a failure stay on-chain and are listed as well.
func (r *DeployRenderer) Render(result *usecase.DeployResult) error {
	network := "unknown network"
	if result.Network != nil {
		network = string(result.Network.Identity)
	}
	plan := ""
	if result.Plan != nil {
		plan = result.Plan.Name
	}

	if result.Err == nil {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed plan %q to %s", plan, network)))
	} else {
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("plan %q failed on %s", plan, network)))
	}

	if len(result.Deployed) > 0 {
		fmt.Fprintln(r.out)
		RenderDeployed(r.out, result.Deployed)
	}

	if result.Err != nil {
		fmt.Fprintln(r.out)
		if result.FailedStep != nil {
			fmt.Fprintf(r.out, "Failed at step %d (%s): %v\n", result.FailedStep.Index, result.FailedStep.Contract, result.Err)
		} else {
			fmt.Fprintf(r.out, "Error: %v\n", result.Err)
		}
		if len(result.Deployed) > 0 {
			fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d contracts above remain deployed; nothing was rolled back", len(result.Deployed))))
		}
	}
	return nil
}

var _ Renderer[*usecase.DeployResult] = (*DeployRenderer)(nil)
