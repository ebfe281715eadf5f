package models

import (
	"bytes"
	"encoding/json"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Artifact is the compiled form of a contract as served by the artifact registry.
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	Bytecode     []byte
	// DeployedBytecode is the runtime code the compiler expects on-chain, with
	// every byte listed in Unfixed zeroed
	DeployedBytecode []byte
	// Unfixed are the runtime byte ranges only known at deploy time: linked
	// library addresses and immutables
	Unfixed []ByteRange
	// Networks maps a chain id (decimal string) to the deployment the compiler
	// toolchain recorded there
	Networks map[string]ArtifactNetwork
	// Path is where the artifact was loaded from
	Path string
}

// ByteRange is a span of runtime code.
type ByteRange struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// ArtifactNetwork is a per-network deployment entry of a Truffle artifact.
type ArtifactNetwork struct {
	Address         common.Address `json:"address"`
	TransactionHash common.Hash    `json:"transactionHash"`
}

// TruffleArtifact is the on-disk JSON layout of build/contracts/<Name>.json.
type TruffleArtifact struct {
	ContractName        string                     `json:"contractName"`
	ABI                 json.RawMessage            `json:"abi"`
	Bytecode            string                     `json:"bytecode"`
	DeployedBytecode    string                     `json:"deployedBytecode"`
	ImmutableReferences map[string][]ByteRange     `json:"immutableReferences"`
	Networks            map[string]ArtifactNetwork `json:"networks"`
}

// HasConstructorInputs reports whether deploying the artifact takes arguments.
func (a *Artifact) HasConstructorInputs() bool {
	return len(a.ABI.Constructor.Inputs) > 0
}

// MatchesRuntime reports whether code is what deploying the artifact leaves
// on-chain. Bytes in Unfixed ranges are ignored. Without DeployedBytecode any
// non-empty code matches.
func (a *Artifact) MatchesRuntime(code []byte) bool {
	if len(code) == 0 {
		return false
	}
	if len(a.DeployedBytecode) == 0 {
		return true
	}
	if len(code) != len(a.DeployedBytecode) {
		return false
	}
	if len(a.Unfixed) > 0 {
		code = bytes.Clone(code)
		for _, r := range a.Unfixed {
			end := min(r.Start+r.Length, len(code))
			for i := max(r.Start, 0); i < end; i++ {
				code[i] = 0
			}
		}
	}
	return crypto.Keccak256Hash(code) == crypto.Keccak256Hash(a.DeployedBytecode)
}
