package api

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ruteri/shardwallet/common"
	"github.com/ruteri/shardwallet/config"
	"github.com/ruteri/shardwallet/cryptoutils"
	"github.com/ruteri/shardwallet/erasure"
	"github.com/ruteri/shardwallet/interfaces"
	"github.com/ruteri/shardwallet/metrics"
	"github.com/ruteri/shardwallet/wallet"
)

// Service runs the wallet operations with a fixed configuration.
type Service struct {
	cfg     *config.Config
	coder   *erasure.Coder
	cipher  cryptoutils.ShardCipher
	chain   interfaces.Chain
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewService validates cfg and builds a service. The logger comes from the
// logging section of cfg. Metrics are registered with registry when enabled.
func NewService(cfg *config.Config, registry prometheus.Registerer) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := common.SetupLogger(cfg.LoggingOpts())

	coder, err := erasure.New(cfg.Scheme.DataShards, cfg.Scheme.ParityShards, erasure.WithLogger(log))
	if err != nil {
		return nil, err
	}
	cipher, err := cfg.ShardCipher()
	if err != nil {
		return nil, err
	}
	chain, err := chainFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	s := &Service{
		cfg:    cfg,
		coder:  coder,
		cipher: cipher,
		chain:  chain,
		log:    log,
	}
	if cfg.Metrics.Enabled {
		s.metrics = metrics.NewMetrics(registry)
	}

	log.Info("shard wallet service configured",
		"scheme", fmt.Sprintf("%d+%d", cfg.Scheme.DataShards, cfg.Scheme.ParityShards),
		"kdf", cipher.KeyDerivation.String(),
		"aead", cipher.Encryption.String(),
		"chain", chain.Name(),
	)
	return s, nil
}

// Logger returns the service logger.
func (s *Service) Logger() *slog.Logger {
	return s.log
}

// EncodeShards encodes data with the configured scheme.
func (s *Service) EncodeShards(data []byte) ([][]byte, error) {
	fragments, err := s.coder.Split(data)
	if err != nil {
		return nil, err
	}
	if err := s.coder.Encode(fragments); err != nil {
		return nil, err
	}
	return fragments, nil
}

// DecodeShards decodes a fragment set of the configured scheme.
func (s *Service) DecodeShards(shards [][]byte) ([]byte, error) {
	return s.coder.Decode(shards)
}

// EncryptShard seals b with the configured cipher.
func (s *Service) EncryptShard(b, password []byte) ([]byte, error) {
	return s.cipher.Encrypt(b, password)
}

// DecryptShard opens an envelope. The algorithms are read from the envelope.
func (s *Service) DecryptShard(b, password []byte) ([]byte, error) {
	plaintext, err := s.cipher.Decrypt(b, password)
	s.metrics.ObserveDecryption(err)
	return plaintext, err
}

// Split issues the three wallet shards for secret with the configured cipher.
func (s *Service) Split(secret, password []byte) (*SplitResponse, error) {
	in, err := wallet.SplitWithCipher(secret, password, s.cipher)
	if err != nil {
		return nil, err
	}
	s.log.Info("issued wallet shards", "kdf", s.cipher.KeyDerivation.String())
	return &SplitResponse{
		ShardWalletRequest: ShardWalletRequest{
			ProjectShard:  in.ProjectShard,
			SystemShard:   in.SystemShard,
			RecoveryShard: in.RecoveryShard,
		},
		Fingerprint: hex.EncodeToString(cryptoutils.Fingerprint(secret)),
	}, nil
}

// OpenWallet decodes a wallet that logs and counts through the service.
func (s *Service) OpenWallet(req ShardWalletRequest) (*wallet.ShardWallet, error) {
	return NewShardWallet(req, wallet.WithLogger(s.log), wallet.WithMetrics(s.metrics))
}

// ChainSigner builds a signer for the configured chain. See ToChainSigner
// for how the inputs are interpreted.
func (s *Service) ChainSigner(seedOrKey []byte, pathOrSuffix string) (interfaces.ChainSigner, error) {
	return chainSigner(s.chain, seedOrKey, pathOrSuffix)
}

// WalletSigner rebuilds the wallet secret with password and returns the
// signer of the configured chain at its default path.
func (s *Service) WalletSigner(req ShardWalletRequest, password []byte, opts ...wallet.BuildOption) (interfaces.ChainSigner, error) {
	w, err := s.OpenWallet(req)
	if err != nil {
		return nil, err
	}
	root, err := w.BuildSigner(password, opts...)
	if err != nil {
		return nil, err
	}
	defer root.Wipe()
	return root.ToChainSigner(s.chain)
}

// Sign signs message with signer and returns the JSON response.
func (s *Service) Sign(signer interfaces.ChainSigner, message []byte) (*SignResponse, error) {
	sig, err := signer.Sign(message)
	if err != nil {
		return nil, err
	}
	return &SignResponse{
		SignerInfo: Describe(signer),
		Signature:  "0x" + hex.EncodeToString(sig),
	}, nil
}
