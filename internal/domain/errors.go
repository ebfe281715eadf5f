package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConfiguration classifies every error that aborts a run before any network activity
	ErrConfiguration = errors.New("configuration error")

	// ErrSecretLoad is returned when secret signing material can't be read or is malformed
	ErrSecretLoad = errors.New("secret load error")

	// ErrDanglingReference is returned when a step references a contract not deployed in this run
	ErrDanglingReference = errors.New("dangling reference")

	// ErrDeploymentFailure is returned when the network rejects or fails to confirm a step
	ErrDeploymentFailure = errors.New("deployment failure")

	// ErrArtifactNotFound is returned when the artifact registry has no entry for a contract
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrInvalidPlan is returned when a deployment plan or setup file can't be interpreted
	ErrInvalidPlan = errors.New("invalid plan")
)

// ConfigurationError reports an unusable network selection or process configuration.
type ConfigurationError struct {
	Network string
	Reason  string
	Err     error
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Network != "" {
		msg += fmt.Sprintf(" for network %q", e.Network)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// SecretLoadError is a ConfigurationError narrowed to the secret seed file so an
// operator can be pointed at the exact path to fix.
type SecretLoadError struct {
	Network   string
	Path      string
	Malformed bool
	Err       error
}

func (e *SecretLoadError) Error() string {
	if e.Malformed {
		return fmt.Sprintf("secret seed for network %q at %s is malformed: %v", e.Network, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to read secret seed for network %q from %s: %v", e.Network, e.Path, e.Err)
}

func (e *SecretLoadError) Unwrap() error { return e.Err }

func (e *SecretLoadError) Is(target error) bool {
	return target == ErrSecretLoad || target == ErrConfiguration
}

// DanglingReferenceError is returned before a step's transaction is submitted when
// one of its arguments names a contract no earlier step of the run produced.
type DanglingReferenceError struct {
	Step      ContractName
	Index     int
	Reference ContractName
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("step %d (%s) references %s, which has not been deployed in this run", e.Index, e.Step, e.Reference)
}

func (e *DanglingReferenceError) Is(target error) bool { return target == ErrDanglingReference }

// DeploymentFailureError wraps the cause of a step that did not reach confirmation.
// Steps confirmed before it stay on-chain; nothing is rolled back.
type DeploymentFailureError struct {
	Step  ContractName
	Index int
	Err   error
}

func (e *DeploymentFailureError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Index, e.Step, e.Err)
}

func (e *DeploymentFailureError) Unwrap() error { return e.Err }

func (e *DeploymentFailureError) Is(target error) bool { return target == ErrDeploymentFailure }

// FailedStep extracts the step name and index from a run error, if it carries one.
func FailedStep(err error) (ContractName, int, bool) {
	var dangling *DanglingReferenceError
	if errors.As(err, &dangling) {
		return dangling.Step, dangling.Index, true
	}
	var failure *DeploymentFailureError
	if errors.As(err, &failure) {
		return failure.Step, failure.Index, true
	}
	return "", -1, false
}
