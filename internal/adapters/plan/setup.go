package plan

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// setupEntry is one action of a setup file, tagged by its action field:
//
//	- action: transfer
//	  from: 1
//	  to_ref: ContractStorage
//	  wei: "1000000000000000000"
type setupEntry struct {
	Action   string    `yaml:"action"`
	Network  string    `yaml:"network"`
	Level    string    `yaml:"level"`
	Duration string    `yaml:"duration"`
	Plan     string    `yaml:"plan"`
	From     int       `yaml:"from"`
	To       string    `yaml:"to"`
	ToRef    string    `yaml:"to_ref"`
	Wei      yaml.Node `yaml:"wei"`
	Contract string    `yaml:"contract"`
}

// LoadSetup implements usecase.SetupLoader
func (l *Loader) LoadSetup(ctx context.Context, path string) ([]domain.SetupAction, error) {
	data, resolved, err := l.read(path)
	if err != nil {
		return nil, err
	}
	actions, err := ParseSetup(data)
	if err != nil {
		return nil, fmt.Errorf("invalid setup file %s: %w", resolved, err)
	}
	return actions, nil
}

// ParseSetup decodes and validates every action of a setup document
func ParseSetup(data []byte) ([]domain.SetupAction, error) {
	var entries []setupEntry
	if err := decodeStrict(data, &entries); err != nil {
		return nil, err
	}

	actions := make([]domain.SetupAction, 0, len(entries))
	for i, entry := range entries {
		action, err := entry.toAction()
		if err == nil {
			err = action.Validate()
		}
		if err != nil {
			return nil, fmt.Errorf("setup action %d: %w", i, err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func (e setupEntry) toAction() (domain.SetupAction, error) {
	action := domain.SetupAction{
		Kind:     domain.SetupActionKind(strings.TrimSpace(e.Action)),
		Network:  domain.NetworkIdentity(e.Network),
		Level:    e.Level,
		PlanPath: e.Plan,
		From:     e.From,
		ToRef:    domain.ContractName(e.ToRef),
		Contract: domain.ContractName(e.Contract),
	}

	if e.Duration != "" {
		d, err := time.ParseDuration(e.Duration)
		if err != nil {
			return action, fmt.Errorf("%w: invalid duration %q", domain.ErrInvalidPlan, e.Duration)
		}
		action.Duration = d
	}

	if e.To != "" {
		if !common.IsHexAddress(e.To) {
			return action, fmt.Errorf("%w: invalid address %q", domain.ErrInvalidPlan, e.To)
		}
		action.To = common.HexToAddress(e.To)
	}

	if e.Wei.Kind != 0 {
		if e.Wei.Kind != yaml.ScalarNode {
			return action, fmt.Errorf("%w: wei must be a number (line %d)", domain.ErrInvalidPlan, e.Wei.Line)
		}
		wei, ok := new(big.Int).SetString(strings.TrimSpace(e.Wei.Value), 0)
		if !ok {
			return action, fmt.Errorf("%w: invalid wei amount %q", domain.ErrInvalidPlan, e.Wei.Value)
		}
		action.Wei = wei
	}

	return action, nil
}

var _ usecase.SetupLoader = (*Loader)(nil)
