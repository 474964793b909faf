package interfaces

import (
	"fmt"
	"strings"
)

// ShardName identifies one of the three named wallet shards.
type ShardName string

const (
	ProjectShard  ShardName = "project"
	SystemShard   ShardName = "system"
	RecoveryShard ShardName = "recovery"
)

// ShardNames lists the named shards in fragment order.
var ShardNames = []ShardName{ProjectShard, SystemShard, RecoveryShard}

// ParseShardName accepts "project", "system" or "recovery" (an optional
// "_shard" suffix is tolerated).
func ParseShardName(s string) (ShardName, error) {
	name := ShardName(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "_shard"))
	switch name {
	case ProjectShard, SystemShard, RecoveryShard:
		return name, nil
	}
	return "", fmt.Errorf("unknown shard name %q", s)
}

// String returns the shard name.
func (n ShardName) String() string {
	return string(n)
}

// Field returns the serialized field name, e.g. "project_shard".
func (n ShardName) Field() string {
	return string(n) + "_shard"
}

// ShardState is the lifecycle state of a shard slot.
type ShardState int

const (
	// ShardAbsent means the slot holds nothing.
	ShardAbsent ShardState = iota
	// ShardEncrypted means the slot holds ciphertext.
	ShardEncrypted
	// ShardPlaintext means the slot holds a fragment ready for the coder.
	ShardPlaintext
)

// String returns state name.
func (s ShardState) String() string {
	switch s {
	case ShardAbsent:
		return "absent"
	case ShardEncrypted:
		return "encrypted"
	case ShardPlaintext:
		return "plaintext"
	default:
		return fmt.Sprintf("ShardState(%d)", int(s))
	}
}

// Shard is a single shard slot. The zero value is an absent shard.
type Shard struct {
	state ShardState
	data  []byte
}

// AbsentShard returns an empty slot.
func AbsentShard() Shard {
	return Shard{}
}

// EncryptedShard wraps ciphertext. A nil buffer yields an absent shard.
func EncryptedShard(ciphertext []byte) Shard {
	if ciphertext == nil {
		return Shard{}
	}
	return Shard{state: ShardEncrypted, data: clone(ciphertext)}
}

// PlaintextShard wraps a decrypted fragment. A nil buffer yields an absent shard.
func PlaintextShard(fragment []byte) Shard {
	if fragment == nil {
		return Shard{}
	}
	return Shard{state: ShardPlaintext, data: clone(fragment)}
}

// State returns the slot state.
func (s Shard) State() ShardState {
	return s.state
}

// Present reports whether the slot holds any bytes.
func (s Shard) Present() bool {
	return s.state != ShardAbsent
}

// IsEncrypted reports whether the slot holds ciphertext.
func (s Shard) IsEncrypted() bool {
	return s.state == ShardEncrypted
}

// IsPlaintext reports whether the slot holds a usable fragment.
func (s Shard) IsPlaintext() bool {
	return s.state == ShardPlaintext
}

// Bytes returns a copy of the slot contents, nil when absent.
func (s Shard) Bytes() []byte {
	if s.state == ShardAbsent {
		return nil
	}
	return clone(s.data)
}

// Len returns the number of bytes held.
func (s Shard) Len() int {
	return len(s.data)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
