package domain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// SetupActionKind is the tag of a test-harness setup action. The vocabulary is
// closed; setup files are data, never code.
type SetupActionKind string

const (
	SetupSetNetwork     SetupActionKind = "set_network"
	SetupSetLogLevel    SetupActionKind = "set_log_level"
	SetupSleep          SetupActionKind = "sleep"
	SetupDeploy         SetupActionKind = "deploy"
	SetupTransfer       SetupActionKind = "transfer"
	SetupAssertDeployed SetupActionKind = "assert_deployed"
)

// SetupAction is one typed entry of a setup file. Only the fields relevant to
// Kind are populated.
type SetupAction struct {
	Kind SetupActionKind

	// set_network
	Network NetworkIdentity
	// set_log_level
	Level string
	// sleep
	Duration time.Duration
	// deploy; empty means the default plan
	PlanPath string
	// transfer
	From  int
	To    common.Address
	ToRef ContractName
	Wei   *big.Int
	// assert_deployed
	Contract ContractName
}

// Validate checks that the fields required by the action's kind are present.
func (a SetupAction) Validate() error {
	switch a.Kind {
	case SetupSetNetwork:
		if a.Network == "" {
			return fmt.Errorf("%w: %s requires a network", ErrInvalidPlan, a.Kind)
		}
	case SetupSetLogLevel:
		if a.Level == "" {
			return fmt.Errorf("%w: %s requires a level", ErrInvalidPlan, a.Kind)
		}
	case SetupSleep:
		if a.Duration <= 0 {
			return fmt.Errorf("%w: %s requires a positive duration", ErrInvalidPlan, a.Kind)
		}
	case SetupDeploy:
	case SetupTransfer:
		if a.Wei == nil || a.Wei.Sign() <= 0 {
			return fmt.Errorf("%w: %s requires a positive wei amount", ErrInvalidPlan, a.Kind)
		}
		if a.From < 0 {
			return fmt.Errorf("%w: %s has a negative account index", ErrInvalidPlan, a.Kind)
		}
		if (a.To == common.Address{}) == (a.ToRef == "") {
			return fmt.Errorf("%w: %s requires exactly one of to or to_ref", ErrInvalidPlan, a.Kind)
		}
	case SetupAssertDeployed:
		if a.Contract == "" {
			return fmt.Errorf("%w: %s requires a contract", ErrInvalidPlan, a.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown setup action %q", ErrInvalidPlan, a.Kind)
	}
	return nil
}
