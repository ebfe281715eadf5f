package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// DeploymentsRenderer renders recorded deployments grouped by network
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out: out,
	}
}

// RenderDeploymentList renders one table per network
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if result.Summary.Total == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	for i, network := range result.Networks {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		header := fmt.Sprintf("◆ %s", network.Network)
		if network.ChainID != 0 {
			header += fmt.Sprintf(" (chain %d)", network.ChainID)
		}
		fmt.Fprintln(r.out, sectionHeaderStyle.Sprint(header))

		t := newTable()
		for _, record := range network.Records {
			flags := ""
			if record.Reused {
				flags = reusedStyle.Sprint("[reused]")
			}
			recorded := ""
			if !record.RecordedAt.IsZero() {
				recorded = faintStyle.Sprint(record.RecordedAt.Local().Format("2006-01-02 15:04:05"))
			}
			t.AppendRow(table.Row{nameStyle.Sprint(record.Contract), addressStyle.Sprint(record.Address.Hex()), flags, recorded})
		}
		fmt.Fprintln(r.out, t.Render())
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total: %d deployments", result.Summary.Total)
	if result.Summary.Reused > 0 {
		fmt.Fprintf(r.out, " (%d reused)", result.Summary.Reused)
	}
	fmt.Fprintln(r.out)
	return nil
}

// RenderDeployed renders the contracts of one run
func RenderDeployed(out io.Writer, contracts []domain.DeployedContract) {
	t := newTable()
	for _, contract := range contracts {
		status := "deployed"
		if contract.Reused {
			status = reusedStyle.Sprint("reused")
		}
		row := table.Row{nameStyle.Sprint(contract.Name), addressStyle.Sprint(contract.Address.Hex()), status}
		if contract.BlockNumber != 0 {
			row = append(row, faintStyle.Sprintf("block %d", contract.BlockNumber))
		}
		t.AppendRow(row)
	}
	fmt.Fprintln(out, strings.TrimRight(t.Render(), "\n"))
}
