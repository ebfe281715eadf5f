package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// DeploymentRecord is the persisted form of a deployed contract, written after a
// run so later, independent runs can find the system without redeploying it.
type DeploymentRecord struct {
	Contract    string         `json:"contract"`
	Address     common.Address `json:"address"`
	TxHash      common.Hash    `json:"txHash,omitempty"`
	BlockNumber uint64         `json:"blockNumber,omitempty"`
	Reused      bool           `json:"reused,omitempty"`
	RecordedAt  time.Time      `json:"recordedAt"`
}

// DeploymentRecordFile is the on-disk layout of one network's records.
type DeploymentRecordFile struct {
	Network   string             `json:"network"`
	ChainID   uint64             `json:"chainId,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt"`
	Records   []DeploymentRecord `json:"records"`
}
