package render

import (
	"fmt"
	"io"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{
		out: out,
	}
}

// RenderNetworksList renders the supported networks, marking the selected one
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable()
	t.AppendHeader(table.Row{"", "Network", "Endpoint", "Chain ID", "Kind"})
	for _, network := range result.Networks {
		marker := ""
		if network.Name == result.Selected {
			marker = "▸"
		}

		endpoint := network.Endpoint
		if network.Placeholder {
			endpoint = faintStyle.Sprint("(not configured)")
		}

		chainID := faintStyle.Sprint("any")
		if network.ChainID != 0 {
			chainID = fmt.Sprintf("%d", network.ChainID)
		}

		kind := "local"
		if network.Public {
			kind = publicStyle.Sprint("public")
		}

		t.AppendRow(table.Row{marker, nameStyle.Sprint(network.Name), endpoint, chainID, kind})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderAccounts renders the accounts derived for a network
func (r *NetworksRenderer) RenderAccounts(result *usecase.ShowAccountsResult) error {
	title := cases.Title(language.English).String(string(result.Network))
	fmt.Fprintln(r.out, sectionHeaderStyle.Sprintf("🔑 %s accounts", title))
	fmt.Fprintln(r.out, faintStyle.Sprintf("   seed: %s", result.Source))
	fmt.Fprintln(r.out)

	showKeys := len(result.Accounts) > 0 && result.Accounts[0].PrivateKey != ""

	t := newTable()
	header := table.Row{"#", "Address"}
	if showKeys {
		header = append(header, "Private Key")
	}
	t.AppendHeader(header)
	for _, acc := range result.Accounts {
		row := table.Row{acc.Index, addressStyle.Sprint(acc.Address)}
		if showKeys {
			row = append(row, acc.PrivateKey)
		}
		t.AppendRow(row)
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}
