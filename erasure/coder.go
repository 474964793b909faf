package erasure

import (
	"fmt"
	"log/slog"

	rs "github.com/klauspost/reedsolomon"

	"github.com/ruteri/shardwallet/common"
	"github.com/ruteri/shardwallet/interfaces"
)

// MaxShards is the largest fragment set supported over GF(2^8).
const MaxShards = 256

// Coder encodes, reconstructs and verifies fragment sets for one fixed
// (dataShards, parityShards) scheme. A Coder holds no per-call state.
type Coder struct {
	enc          rs.Encoder
	dataShards   int
	parityShards int
	log          *slog.Logger
}

// Option configures a Coder.
type Option func(*Coder)

// WithLogger sets the logger used for codec diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Coder) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a coder for the given scheme. It fails with ErrScheme when
// dataShards < 1, parityShards < 0 or the total exceeds MaxShards.
func New(dataShards, parityShards int, opts ...Option) (*Coder, error) {
	switch {
	case dataShards < 1:
		return nil, fmt.Errorf("%w: data shards must be at least 1, got %d", interfaces.ErrScheme, dataShards)
	case parityShards < 0:
		return nil, fmt.Errorf("%w: parity shards must not be negative, got %d", interfaces.ErrScheme, parityShards)
	case dataShards+parityShards > MaxShards:
		return nil, fmt.Errorf("%w: at most %d fragments, got %d", interfaces.ErrScheme, MaxShards, dataShards+parityShards)
	}

	enc, err := rs.New(dataShards, parityShards)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrScheme, err)
	}

	c := &Coder{
		enc:          enc,
		dataShards:   dataShards,
		parityShards: parityShards,
		log:          common.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DataShards returns the recovery threshold.
func (c *Coder) DataShards() int { return c.dataShards }

// ParityShards returns the number of redundancy fragments.
func (c *Coder) ParityShards() int { return c.parityShards }

// TotalShards returns the size of a fragment set.
func (c *Coder) TotalShards() int { return c.dataShards + c.parityShards }

// Split cuts data into DataShards equal fragments followed by zero-filled
// parity placeholders. The input is copied.
func (c *Coder) Split(data []byte) ([][]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", interfaces.ErrScheme)
	}
	if len(data)%c.dataShards != 0 {
		return nil, fmt.Errorf("%w: payload length %d is not a multiple of %d data shards", interfaces.ErrScheme, len(data), c.dataShards)
	}

	size := len(data) / c.dataShards
	fragments := make([][]byte, c.TotalShards())
	for i := 0; i < c.dataShards; i++ {
		fragments[i] = make([]byte, size)
		copy(fragments[i], data[i*size:(i+1)*size])
	}
	for i := c.dataShards; i < len(fragments); i++ {
		fragments[i] = make([]byte, size)
	}
	return fragments, nil
}

// Encode fills the parity slots of a fragment set whose data slots are
// populated. Missing parity slots are allocated. It fails with ErrScheme if
// the set has the wrong number of slots or the fragments differ in length.
func (c *Coder) Encode(fragments [][]byte) error {
	if len(fragments) != c.TotalShards() {
		return fmt.Errorf("%w: expected %d fragments, got %d", interfaces.ErrScheme, c.TotalShards(), len(fragments))
	}

	size := len(fragments[0])
	if size == 0 {
		return fmt.Errorf("%w: data fragment 0 is empty", interfaces.ErrScheme)
	}
	for i := 1; i < c.dataShards; i++ {
		if len(fragments[i]) != size {
			return fmt.Errorf("%w: data fragment %d has length %d, expected %d", interfaces.ErrScheme, i, len(fragments[i]), size)
		}
	}
	for i := c.dataShards; i < len(fragments); i++ {
		switch len(fragments[i]) {
		case 0:
			fragments[i] = make([]byte, size)
		case size:
		default:
			return fmt.Errorf("%w: parity fragment %d has length %d, expected %d", interfaces.ErrScheme, i, len(fragments[i]), size)
		}
	}

	if err := c.enc.Encode(fragments); err != nil {
		return fmt.Errorf("%w: %v", interfaces.ErrScheme, err)
	}
	return nil
}

// Reconstruct fills every missing slot of a fragment set in place. At least
// DataShards slots must be present and all present slots must have the same
// length; otherwise ErrFragmentation is returned.
func (c *Coder) Reconstruct(fragments [][]byte) error {
	if len(fragments) != c.TotalShards() {
		return fmt.Errorf("%w: expected %d fragments, got %d", interfaces.ErrFragmentation, c.TotalShards(), len(fragments))
	}

	present, size := 0, 0
	for i, f := range fragments {
		if len(f) == 0 {
			// Drop any backing array so the codec allocates fresh memory.
			fragments[i] = nil
			continue
		}
		if size == 0 {
			size = len(f)
		} else if len(f) != size {
			return fmt.Errorf("%w: fragment %d has length %d, expected %d", interfaces.ErrFragmentation, i, len(f), size)
		}
		present++
	}
	if present < c.dataShards {
		return fmt.Errorf("%w: have %d of %d required fragments", interfaces.ErrFragmentation, present, c.dataShards)
	}
	if present == len(fragments) {
		return nil
	}

	if err := c.enc.Reconstruct(fragments); err != nil {
		c.log.Debug("reed-solomon reconstruct failed", "err", err, "present", present)
		return interfaces.ErrFragmentation
	}
	return nil
}

// Verify recomputes the parity from the data fragments and compares it with
// the parity slots. A mismatch is ErrVerification; an incomplete or
// inconsistent set is ErrFragmentation.
func (c *Coder) Verify(fragments [][]byte) error {
	if len(fragments) != c.TotalShards() {
		return fmt.Errorf("%w: expected %d fragments, got %d", interfaces.ErrFragmentation, c.TotalShards(), len(fragments))
	}
	size := len(fragments[0])
	for i, f := range fragments {
		if len(f) == 0 {
			return fmt.Errorf("%w: fragment %d is missing", interfaces.ErrFragmentation, i)
		}
		if len(f) != size {
			return fmt.Errorf("%w: fragment %d has length %d, expected %d", interfaces.ErrFragmentation, i, len(f), size)
		}
	}

	ok, err := c.enc.Verify(fragments)
	if err != nil {
		c.log.Debug("reed-solomon verify failed", "err", err)
		return interfaces.ErrFragmentation
	}
	if !ok {
		return interfaces.ErrVerification
	}
	return nil
}

// Join concatenates the data fragments of a complete set.
func (c *Coder) Join(fragments [][]byte) []byte {
	n := 0
	for _, f := range fragments[:c.dataShards] {
		n += len(f)
	}
	out := make([]byte, 0, n)
	for _, f := range fragments[:c.dataShards] {
		out = append(out, f...)
	}
	return out
}

// EncodeShards splits data into dataShards fragments and appends
// parityShards parity fragments. len(data) must be a multiple of dataShards.
func EncodeShards(data []byte, dataShards, parityShards int) ([][]byte, error) {
	c, err := New(dataShards, parityShards)
	if err != nil {
		return nil, err
	}
	fragments, err := c.Split(data)
	if err != nil {
		return nil, err
	}
	if err := c.Encode(fragments); err != nil {
		return nil, err
	}
	return fragments, nil
}

// DecodeShards rebuilds the original payload from a partially populated
// fragment set. Nil slots are missing fragments. The caller's slice is not
// modified.
func DecodeShards(fragments [][]byte, dataShards, parityShards int) ([]byte, error) {
	c, err := New(dataShards, parityShards)
	if err != nil {
		return nil, err
	}
	return c.Decode(fragments)
}

// Decode reconstructs, verifies and joins a copy of the fragment set.
func (c *Coder) Decode(fragments [][]byte) ([]byte, error) {
	work := make([][]byte, len(fragments))
	copy(work, fragments)

	if err := c.Reconstruct(work); err != nil {
		return nil, err
	}
	if err := c.Verify(work); err != nil {
		return nil, err
	}
	return c.Join(work), nil
}
