package plan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/migrations"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Loader reads deployment plans and setup files. Relative paths are resolved
// against the project root.
type Loader struct {
	root string
}

// NewLoader creates a new Loader
func NewLoader(cfg *config.RuntimeConfig) *Loader {
	return &Loader{root: cfg.ProjectRoot}
}

type planFile struct {
	Name  string     `yaml:"name"`
	Steps []stepFile `yaml:"steps"`
}

type stepFile struct {
	Contract string    `yaml:"contract"`
	Args     []argFile `yaml:"args"`
}

type argFile struct {
	Ref   string    `yaml:"ref"`
	Value yaml.Node `yaml:"value"`
}

// LoadPlan implements usecase.PlanLoader
func (l *Loader) LoadPlan(ctx context.Context, ref string) (*domain.Plan, error) {
	if ref == "" {
		return migrations.Default(), nil
	}
	if plan, ok := migrations.Lookup(ref); ok {
		return plan, nil
	}

	data, path, err := l.read(ref)
	if err != nil {
		return nil, err
	}
	plan, err := ParsePlan(data)
	if err != nil {
		return nil, fmt.Errorf("invalid plan file %s: %w", path, err)
	}
	if plan.Name == "" {
		plan.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return plan, nil
}

// ParsePlan decodes a YAML plan document
func ParsePlan(data []byte) (*domain.Plan, error) {
	var file planFile
	if err := decodeStrict(data, &file); err != nil {
		return nil, err
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("%w: plan has no steps", domain.ErrInvalidPlan)
	}

	plan := &domain.Plan{Name: file.Name, Steps: make([]domain.DeploymentStep, 0, len(file.Steps))}
	for i, s := range file.Steps {
		if strings.TrimSpace(s.Contract) == "" {
			return nil, fmt.Errorf("%w: step %d has no contract", domain.ErrInvalidPlan, i)
		}
		step := domain.DeploymentStep{Contract: domain.ContractName(strings.TrimSpace(s.Contract))}
		for j, a := range s.Args {
			arg, err := a.toArg()
			if err != nil {
				return nil, fmt.Errorf("step %d (%s) argument %d: %w", i, step.Contract, j, err)
			}
			step.Args = append(step.Args, arg)
		}
		plan.Steps = append(plan.Steps, step)
	}
	return plan, nil
}

func (a argFile) toArg() (domain.Arg, error) {
	hasValue := a.Value.Kind != 0
	switch {
	case a.Ref != "" && hasValue:
		return domain.Arg{}, fmt.Errorf("%w: both ref and value given", domain.ErrInvalidPlan)
	case a.Ref != "":
		return domain.Ref(domain.ContractName(a.Ref)), nil
	case !hasValue:
		return domain.Arg{}, fmt.Errorf("%w: one of ref or value is required", domain.ErrInvalidPlan)
	}

	value, err := scalarValue(&a.Value)
	if err != nil {
		return domain.Arg{}, err
	}
	return domain.Literal(value), nil
}

// scalarValue decodes a literal. Integers are kept as their source text so that
// values beyond 64 bits keep full precision.
func scalarValue(node *yaml.Node) (any, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("%w: value must be a scalar (line %d)", domain.ErrInvalidPlan, node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		return nil, fmt.Errorf("%w: value is null (line %d)", domain.ErrInvalidPlan, node.Line)
	case "!!int":
		return node.Value, nil
	case "!!float":
		// integer literals too large for 64 bits resolve as floats
		if isIntegerText(node.Value) {
			return node.Value, nil
		}
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPlan, err)
	}
	return v, nil
}

func isIntegerText(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}

func (l *Loader) read(ref string) ([]byte, string, error) {
	path := ref
	if !filepath.IsAbs(path) && l.root != "" {
		path = filepath.Join(l.root, path)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, path, fmt.Errorf("%w: %s is neither a built-in plan (%s) nor an existing file",
			domain.ErrInvalidPlan, ref, strings.Join(migrations.Names(), ", "))
	}
	if err != nil {
		return nil, path, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, path, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: document is empty", domain.ErrInvalidPlan)
		}
		return fmt.Errorf("%w: failed to parse YAML: %v", domain.ErrInvalidPlan, err)
	}
	return nil
}

var _ usecase.PlanLoader = (*Loader)(nil)
