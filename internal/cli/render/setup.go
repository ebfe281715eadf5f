package render

import (
	"fmt"
	"io"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
)

// SetupRenderer renders the outcome of a setup file
type SetupRenderer struct {
	out io.Writer
}

// NewSetupRenderer creates a new setup renderer
func NewSetupRenderer(out io.Writer) *SetupRenderer {
	return &SetupRenderer{out: out}
}

// Render implements Renderer
func (r *SetupRenderer) Render(result *usecase.RunSetupResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Ran %d setup actions", result.Executed)))
	if len(result.Deployed) > 0 {
		fmt.Fprintln(r.out)
		RenderDeployed(r.out, result.Deployed)
	}
	for _, transfer := range result.Transfers {
		fmt.Fprintf(r.out, "  transfer %s %s\n", addressStyle.Sprint(transfer.TxHash.Hex()), faintStyle.Sprintf("block %d", transfer.BlockNumber))
	}
	return nil
}

var _ Renderer[*usecase.RunSetupResult] = (*SetupRenderer)(nil)
