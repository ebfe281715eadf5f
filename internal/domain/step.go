package domain

import (
	"fmt"
	"strings"
)

// ArgKind tells a literal constructor argument from a reference to a prior step.
type ArgKind int

const (
	ArgLiteral ArgKind = iota
	ArgReference
)

// Arg is one constructor argument of a deployment step.
type Arg struct {
	Kind  ArgKind
	Value any
	Ref   ContractName
}

// Literal wraps a value that is passed to the constructor as is, after coercion
// to the ABI input type.
func Literal(value any) Arg {
	return Arg{Kind: ArgLiteral, Value: value}
}

// Ref refers to the address produced by an earlier step of the same run.
func Ref(name ContractName) Arg {
	return Arg{Kind: ArgReference, Ref: name}
}

func (a Arg) String() string {
	if a.Kind == ArgReference {
		return "ref:" + string(a.Ref)
	}
	return fmt.Sprintf("%v", a.Value)
}

// DeploymentStep is one contract creation and its constructor arguments.
type DeploymentStep struct {
	Contract ContractName
	Args     []Arg
}

// Deploy builds a step.
func Deploy(name ContractName, args ...Arg) DeploymentStep {
	return DeploymentStep{Contract: name, Args: args}
}

// References lists the contract names this step depends on, in argument order.
func (s DeploymentStep) References() []ContractName {
	var refs []ContractName
	for _, arg := range s.Args {
		if arg.Kind == ArgReference {
			refs = append(refs, arg.Ref)
		}
	}
	return refs
}

func (s DeploymentStep) String() string {
	parts := make([]string, len(s.Args))
	for i, arg := range s.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", s.Contract, strings.Join(parts, ", "))
}

// Plan is a named, statically ordered sequence of steps.
type Plan struct {
	Name  string
	Steps []DeploymentStep
}

// CheckReferences lints a step sequence without touching any network: every
// reference must name a contract deployed by an earlier step, and no contract may
// be deployed twice. The orchestrator repeats the reference check at run time.
func CheckReferences(steps []DeploymentStep) error {
	seen := make(map[ContractName]int, len(steps))
	for i, step := range steps {
		if step.Contract == "" {
			return fmt.Errorf("%w: step %d has no contract name", ErrInvalidPlan, i)
		}
		for _, ref := range step.References() {
			if _, ok := seen[ref]; !ok {
				return &DanglingReferenceError{Step: step.Contract, Index: i, Reference: ref}
			}
		}
		if prev, dup := seen[step.Contract]; dup {
			return fmt.Errorf("%w: %s is deployed by both step %d and step %d", ErrInvalidPlan, step.Contract, prev, i)
		}
		seen[step.Contract] = i
	}
	return nil
}
