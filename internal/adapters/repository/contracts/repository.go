package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/config"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/domain/models"
	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sahilm/fuzzy"
)

// Repository indexes the compiled Truffle artifacts of a project
// (build/contracts/<Name>.json) and serves them by contract name.
type Repository struct {
	artifactsDir string
	artifacts    map[domain.ContractName]*models.Artifact // key: contractName
	skipped      map[string]error                         // key: file path
	log          *slog.Logger
	mu           sync.RWMutex
	indexed      bool
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		artifactsDir: cfg.ArtifactsDir,
		artifacts:    make(map[domain.ContractName]*models.Artifact),
		skipped:      make(map[string]error),
		log:          log.With("component", "artifacts"),
	}
}

// Index loads every artifact of the artifacts directory. It runs once; later
// calls are no-ops.
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	// Reset indexes
	r.artifacts = make(map[domain.ContractName]*models.Artifact)
	r.skipped = make(map[string]error)

	entries, err := os.ReadDir(r.artifactsDir)
	if err != nil {
		if os.IsNotExist(err) {
			r.log.Warn("artifacts directory does not exist", "dir", r.artifactsDir)
			r.indexed = true
			return nil
		}
		return fmt.Errorf("failed to read artifacts directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(r.artifactsDir, entry.Name())
		artifact, err := loadArtifact(path)
		if err != nil {
			// Keep indexing; the error surfaces if this contract is requested
			r.log.Debug("skipping artifact", "path", path, "error", err)
			r.skipped[path] = err
			continue
		}
		name := domain.ContractName(artifact.ContractName)
		if prev, dup := r.artifacts[name]; dup {
			r.log.Warn("duplicate artifact", "contract", name, "kept", prev.Path, "ignored", path)
			continue
		}
		r.artifacts[name] = artifact
	}

	r.log.Debug("indexed artifacts", "dir", r.artifactsDir, "count", len(r.artifacts), "skipped", len(r.skipped))
	r.indexed = true
	return nil
}

// Lookup returns the artifact of a contract
func (r *Repository) Lookup(ctx context.Context, name domain.ContractName) (*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if artifact, ok := r.artifacts[name]; ok {
		return artifact, nil
	}

	// A file named after the contract that failed to load is more useful than "not found"
	path := filepath.Join(r.artifactsDir, string(name)+".json")
	if err, ok := r.skipped[path]; ok {
		return nil, fmt.Errorf("artifact %s is unusable: %w", path, err)
	}

	msg := fmt.Sprintf("%s in %s", name, r.artifactsDir)
	if suggestion := r.suggest(string(name)); suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %s?)", suggestion)
	}
	return nil, fmt.Errorf("%s: %w", msg, domain.ErrArtifactNotFound)
}

// DeployedAddress returns the deployment recorded in a contract's artifact for a chain
func (r *Repository) DeployedAddress(ctx context.Context, name domain.ContractName, chainID uint64) (*models.ArtifactNetwork, error) {
	artifact, err := r.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	entry, ok := artifact.Networks[strconv.FormatUint(chainID, 10)]
	if !ok || entry.Address == (common.Address{}) {
		return nil, fmt.Errorf("%s has no deployment for chain %d: %w", name, chainID, domain.ErrNotFound)
	}
	return &entry, nil
}

// suggest must be called with r.mu held
func (r *Repository) suggest(name string) string {
	names := make([]string, 0, len(r.artifacts))
	for n := range r.artifacts {
		names = append(names, string(n))
	}
	sort.Strings(names)
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func loadArtifact(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw models.TruffleArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid artifact JSON: %w", err)
	}
	if raw.ContractName == "" {
		return nil, fmt.Errorf("missing contractName")
	}

	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("invalid ABI: %w", err)
	}

	bytecode, err := decodeBytecode(raw.Bytecode)
	if err != nil {
		return nil, err
	}

	runtime, unfixed, err := decodeRuntime(raw.DeployedBytecode, raw.ImmutableReferences)
	if err != nil {
		return nil, err
	}

	return &models.Artifact{
		ContractName:     raw.ContractName,
		ABI:              parsed,
		Bytecode:         bytecode,
		DeployedBytecode: runtime,
		Unfixed:          unfixed,
		Networks:         raw.Networks,
		Path:             path,
	}, nil
}

// decodeBytecode decodes creation bytecode. Unlinked library placeholders
// ("__Name____") cannot be deployed and are rejected.
func decodeBytecode(code string) ([]byte, error) {
	if strings.Contains(code, "__") {
		return nil, fmt.Errorf("bytecode has unlinked library references")
	}
	if code == "" || code == "0x" {
		return nil, fmt.Errorf("empty bytecode (abstract contract or interface)")
	}
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}
	decoded, err := hexutil.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	return decoded, nil
}

// libraryPlaceholderLen is the hex length of a "__Name____" or "__$hash$__" slot.
const libraryPlaceholderLen = 2 * common.AddressLength

// decodeRuntime decodes runtime bytecode. Library placeholders are zeroed and
// reported as unfixed together with the immutable slots. Empty input decodes to
// nil.
func decodeRuntime(code string, immutables map[string][]models.ByteRange) ([]byte, []models.ByteRange, error) {
	code = strings.TrimPrefix(code, "0x")
	if code == "" {
		return nil, nil, nil
	}

	var unfixed []models.ByteRange
	var clean strings.Builder
	clean.Grow(len(code))
	for i := 0; i < len(code); {
		if strings.HasPrefix(code[i:], "__") && i%2 == 0 {
			if i+libraryPlaceholderLen > len(code) {
				return nil, nil, fmt.Errorf("invalid deployed bytecode: truncated library placeholder at byte %d", i/2)
			}
			unfixed = append(unfixed, models.ByteRange{Start: i / 2, Length: common.AddressLength})
			clean.WriteString(strings.Repeat("0", libraryPlaceholderLen))
			i += libraryPlaceholderLen
			continue
		}
		clean.WriteByte(code[i])
		i++
	}

	decoded, err := hexutil.Decode("0x" + clean.String())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid deployed bytecode: %w", err)
	}

	for _, refs := range immutables {
		for _, r := range refs {
			if r.Start < 0 || r.Length <= 0 || r.Start+r.Length > len(decoded) {
				return nil, nil, fmt.Errorf("invalid immutable reference %d+%d", r.Start, r.Length)
			}
			for j := r.Start; j < r.Start+r.Length; j++ {
				decoded[j] = 0
			}
			unfixed = append(unfixed, r)
		}
	}
	sort.Slice(unfixed, func(a, b int) bool { return unfixed[a].Start < unfixed[b].Start })
	return decoded, unfixed, nil
}

// Ensure Repository implements ArtifactRegistry
var _ usecase.ArtifactRegistry = (*Repository)(nil)
