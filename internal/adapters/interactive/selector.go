package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
)

// ErrNonInteractive is returned when a prompt would be needed in non-interactive mode
var ErrNonInteractive = errors.New("interactive selection not available in non-interactive mode")

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectNetwork selects a network from a list
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []config.NetworkSpec, prompt string) (domain.NetworkIdentity, error) {
	if s.config.NonInteractive {
		return "", ErrNonInteractive
	}
	if len(networks) == 0 {
		return "", fmt.Errorf("no networks provided for selection")
	}
	if len(networks) == 1 {
		return networks[0].Identity, nil
	}

	options := formatNetworkOptions(networks)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:     prompt,
		Items:     options,
		Templates: templates,
		Size:      len(options),
		Searcher:  createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return networks[index].Identity, nil
}

// Confirm asks a yes/no question. Non-interactive mode answers yes: passing
// --non-interactive is the operator's consent.
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return true, nil
	}

	p := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}
	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

// formatNetworkOptions creates display strings for network selection
func formatNetworkOptions(networks []config.NetworkSpec) []string {
	options := make([]string, len(networks))
	for i, network := range networks {
		name := color.New(color.FgWhite, color.Bold).Sprint(network.Identity)
		endpoint := network.Endpoint
		if network.Placeholder {
			endpoint = "no endpoint"
		}
		option := fmt.Sprintf("%s (%s)", name, color.New(color.FgBlue).Sprint(endpoint))
		if network.Identity.IsPublic() {
			option += " " + color.New(color.FgYellow).Sprint("[public]")
		}
		options[i] = option
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.InteractiveSelector = (*SelectorAdapter)(nil)
