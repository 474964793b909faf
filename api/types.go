package api

import (
	"github.com/ruteri/shardwallet/interfaces"
	"github.com/ruteri/shardwallet/wallet"
)

// KeyObject is the JSON view of a derived key node.
type KeyObject = interfaces.KeyObject

// ShardWalletRequest carries the three base64 encoded shards of a wallet. An
// empty field is an absent shard.
type ShardWalletRequest struct {
	ProjectShard  string `json:"project_shard,omitempty"`
	SystemShard   string `json:"system_shard,omitempty"`
	RecoveryShard string `json:"recovery_shard,omitempty"`
}

func (r ShardWalletRequest) input() wallet.ShardInput {
	return wallet.ShardInput{
		ProjectShard:  r.ProjectShard,
		SystemShard:   r.SystemShard,
		RecoveryShard: r.RecoveryShard,
	}
}

// SplitResponse holds freshly issued shards.
type SplitResponse struct {
	ShardWalletRequest

	// Fingerprint is the hex SHA-256 of the secret, for later integrity checks.
	Fingerprint string `json:"fingerprint"`
}

// SignerInfo is the public description of a chain signer.
type SignerInfo struct {
	Chain     string `json:"chain"`
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
	Path      string `json:"path"`
}

// SignResponse carries a signature over a caller message.
type SignResponse struct {
	SignerInfo

	Signature string `json:"signature"` // 0x-prefixed hex
}
