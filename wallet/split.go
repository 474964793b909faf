package wallet

import (
	"encoding/base64"
	"fmt"

	"github.com/ruteri/shardwallet/cryptoutils"
	"github.com/ruteri/shardwallet/erasure"
	"github.com/ruteri/shardwallet/interfaces"
)

// Split encodes secret with the wallet scheme and returns the three shards,
// with the project and recovery shards encrypted under password using
// cryptoutils.DefaultCipher.
func Split(secret, password []byte) (*ShardInput, error) {
	return SplitWithCipher(secret, password, cryptoutils.DefaultCipher)
}

// SplitWithCipher is like Split with a caller-chosen cipher. The secret must
// be a valid BIP-32 seed (16 to 64 bytes) of even length.
func SplitWithCipher(secret, password []byte, cipher cryptoutils.ShardCipher) (*ShardInput, error) {
	if len(secret) < 16 || len(secret) > 64 {
		return nil, fmt.Errorf("%w: secret must be 16 to 64 bytes, got %d", interfaces.ErrScheme, len(secret))
	}

	fragments, err := erasure.EncodeShards(secret, DataShards, ParityShards)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, f := range fragments {
			cryptoutils.WipeBytes(f)
		}
	}()

	project, err := cipher.Encrypt(fragments[firstShardSlot], password)
	if err != nil {
		return nil, fmt.Errorf("encrypt %s: %w", interfaces.ProjectShard.Field(), err)
	}
	recovery, err := cipher.Encrypt(fragments[firstShardSlot+2], password)
	if err != nil {
		return nil, fmt.Errorf("encrypt %s: %w", interfaces.RecoveryShard.Field(), err)
	}

	return &ShardInput{
		ProjectShard:  base64.StdEncoding.EncodeToString(project),
		SystemShard:   base64.StdEncoding.EncodeToString(fragments[firstShardSlot+1]),
		RecoveryShard: base64.StdEncoding.EncodeToString(recovery),
	}, nil
}
