package wallet

import (
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ruteri/shardwallet/common"
	"github.com/ruteri/shardwallet/cryptoutils"
	"github.com/ruteri/shardwallet/erasure"
	"github.com/ruteri/shardwallet/interfaces"
	"github.com/ruteri/shardwallet/metrics"
)

// Fixed coding scheme of every wallet.
const (
	DataShards   = 2
	ParityShards = 3
)

// firstShardSlot is the fragment position of the project shard. The system
// and recovery shards follow it.
const firstShardSlot = DataShards

// ShardInput carries base64 encoded shards. An empty field is an absent shard.
type ShardInput struct {
	ProjectShard  string `json:"project_shard,omitempty" yaml:"project_shard,omitempty"`
	SystemShard   string `json:"system_shard,omitempty" yaml:"system_shard,omitempty"`
	RecoveryShard string `json:"recovery_shard,omitempty" yaml:"recovery_shard,omitempty"`
}

func (in *ShardInput) field(name interfaces.ShardName) string {
	switch name {
	case interfaces.ProjectShard:
		return in.ProjectShard
	case interfaces.SystemShard:
		return in.SystemShard
	default:
		return in.RecoveryShard
	}
}

// ShardWallet holds the three named shard slots.
type ShardWallet struct {
	shards  [3]interfaces.Shard
	coder   *erasure.Coder
	log     *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a ShardWallet.
type Option func(*ShardWallet)

// WithLogger sets the wallet logger. Every record carries a per-wallet uid.
func WithLogger(log *slog.Logger) Option {
	return func(w *ShardWallet) {
		if log != nil {
			w.log = log
		}
	}
}

// WithMetrics enables operation counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(w *ShardWallet) {
		w.metrics = m
	}
}

// New creates a wallet from three shard slots.
func New(project, system, recovery interfaces.Shard, opts ...Option) *ShardWallet {
	w := &ShardWallet{
		shards: [3]interfaces.Shard{project, system, recovery},
		log:    common.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With("uid", uuid.NewString())

	coder, err := erasure.New(DataShards, ParityShards, erasure.WithLogger(w.log))
	if err != nil {
		// The scheme is a valid constant.
		panic(err)
	}
	w.coder = coder
	return w
}

// NewFromBase64 decodes the input shards. The system shard is loaded as
// plaintext, the project and recovery shards as ciphertext. A decoding
// failure names the offending field.
func NewFromBase64(in ShardInput, opts ...Option) (*ShardWallet, error) {
	var shards [3]interfaces.Shard
	for i, name := range interfaces.ShardNames {
		encoded := in.field(name)
		if encoded == "" {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to deserialize %s: %w", name.Field(), err)
		}
		if name == interfaces.SystemShard {
			shards[i] = interfaces.PlaintextShard(raw)
		} else {
			shards[i] = interfaces.EncryptedShard(raw)
		}
	}
	return New(shards[0], shards[1], shards[2], opts...), nil
}

func slot(name interfaces.ShardName) int {
	for i, n := range interfaces.ShardNames {
		if n == name {
			return i
		}
	}
	panic(fmt.Sprintf("unknown shard %q", name))
}

// Shard returns the named slot.
func (w *ShardWallet) Shard(name interfaces.ShardName) interfaces.Shard {
	return w.shards[slot(name)]
}

// Validate fails with ErrMissingShards unless at least two of the three slots
// are populated. Any pair is accepted.
func (w *ShardWallet) Validate() error {
	present := 0
	for _, s := range w.shards {
		if s.Present() {
			present++
		}
	}
	if present < DataShards {
		return fmt.Errorf("%w: %d of 3 shards present, need at least %d", interfaces.ErrMissingShards, present, DataShards)
	}
	return nil
}

// ValidateForSigning additionally requires the system shard, which signing
// pairs with one decrypted shard.
func (w *ShardWallet) ValidateForSigning() error {
	if err := w.Validate(); err != nil {
		return err
	}
	if !w.Shard(interfaces.SystemShard).Present() {
		return fmt.Errorf("%w: %s is required for signing", interfaces.ErrMissingShards, interfaces.SystemShard.Field())
	}
	return nil
}

// ReconstructSecret rebuilds the secret from the plaintext shards. Encrypted
// shards are treated as missing fragments.
func (w *ShardWallet) ReconstructSecret() (secret []byte, err error) {
	defer func() { w.metrics.ObserveReconstruction(err) }()

	if err := w.Validate(); err != nil {
		return nil, err
	}

	fragments := make([][]byte, DataShards+ParityShards)
	usable := make([]string, 0, len(w.shards))
	for i, s := range w.shards {
		if s.IsPlaintext() {
			fragments[firstShardSlot+i] = s.Bytes()
			usable = append(usable, interfaces.ShardNames[i].String())
		}
	}
	if len(usable) < DataShards {
		return nil, fmt.Errorf("%w: %d plaintext shards, need %d (decrypt a shard first)", interfaces.ErrMissingShards, len(usable), DataShards)
	}

	if err := w.coder.Reconstruct(fragments); err != nil {
		w.log.Warn("failed to reconstruct secret", "shards", usable, "err", err)
		return nil, err
	}
	if err := w.coder.Verify(fragments); err != nil {
		w.log.Warn("reconstructed fragments failed verification", "shards", usable, "err", err)
		return nil, err
	}

	secret = w.coder.Join(fragments)
	for _, f := range fragments {
		cryptoutils.WipeBytes(f)
	}
	w.log.Debug("reconstructed secret", "shards", usable)
	return secret, nil
}

// VerifyIntegrity reports whether the SHA-256 fingerprint of the
// reconstructed secret equals expectedDigest. The secret itself is not
// returned.
func (w *ShardWallet) VerifyIntegrity(expectedDigest []byte) (bool, error) {
	secret, err := w.ReconstructSecret()
	if err != nil {
		return false, err
	}
	defer cryptoutils.WipeBytes(secret)
	return cryptoutils.FingerprintEqual(cryptoutils.Fingerprint(secret), expectedDigest), nil
}

// DecryptShard moves the named shard from the encrypted to the plaintext
// state. A shard that is already plaintext is left alone. On failure the
// slot is unchanged.
func (w *ShardWallet) DecryptShard(name interfaces.ShardName, password []byte) (err error) {
	i := slot(name)
	s := w.shards[i]
	switch {
	case !s.Present():
		return fmt.Errorf("%w: %s is absent", interfaces.ErrDecryption, name.Field())
	case s.IsPlaintext():
		return nil
	}

	defer func() { w.metrics.ObserveDecryption(err) }()

	plaintext, err := cryptoutils.Decrypt(s.Bytes(), password)
	if err != nil {
		w.log.Info("failed to decrypt shard", "shard", name.String())
		return fmt.Errorf("%s: %w", name.Field(), err)
	}
	// Fragments are never empty; an empty payload would also read back as
	// an absent slot.
	if len(plaintext) == 0 {
		return fmt.Errorf("%w: %s decrypts to an empty fragment", interfaces.ErrDecryption, name.Field())
	}
	w.shards[i] = interfaces.PlaintextShard(plaintext)
	cryptoutils.WipeBytes(plaintext)
	return nil
}

// BuildOption configures BuildSigner.
type BuildOption func(*buildConfig)

type buildConfig struct {
	source interfaces.ShardName
}

// WithRecoveryShard builds the signer from the recovery shard instead of the
// project shard.
func WithRecoveryShard() BuildOption {
	return func(c *buildConfig) {
		c.source = interfaces.RecoveryShard
	}
}

// BuildSigner decrypts the project shard (or the recovery shard with
// WithRecoveryShard), pairs it with the system shard and returns the root
// signer for the reconstructed secret.
func (w *ShardWallet) BuildSigner(password []byte, opts ...BuildOption) (*Signer, error) {
	cfg := buildConfig{source: interfaces.ProjectShard}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := w.ValidateForSigning(); err != nil {
		return nil, err
	}
	if err := w.DecryptShard(cfg.source, password); err != nil {
		return nil, err
	}

	secret, err := w.ReconstructSecret()
	if err != nil {
		return nil, err
	}

	w.log.Info("built signer", "source", cfg.source.String())
	return newSigner(secret, w.log, w.metrics), nil
}
