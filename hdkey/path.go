package hdkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"

	"github.com/ruteri/shardwallet/interfaces"
)

// ParsePath parses an absolute BIP-32 derivation path. Segments are decimal
// indexes below 2^31 without leading zeros, optionally followed by ', h or H
// to mark a hardened child. The returned path is empty for the root key.
func ParsePath(path string) (accounts.DerivationPath, error) {
	path = strings.TrimSpace(path)
	if path == "m" || path == "m/" {
		return accounts.DerivationPath{}, nil
	}
	if !strings.HasPrefix(path, "m/") {
		return nil, fmt.Errorf("%w: %q must start with m/", interfaces.ErrInvalidPath, path)
	}

	segments := strings.Split(path[2:], "/")
	parsed := make(accounts.DerivationPath, 0, len(segments))
	for _, segment := range segments {
		index, err := parseSegment(segment)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %q in %q: %w", interfaces.ErrInvalidPath, segment, path, err)
		}
		parsed = append(parsed, index)
	}
	return parsed, nil
}

func parseSegment(segment string) (uint32, error) {
	digits, hardened := segment, false
	if n := len(segment); n > 0 {
		switch segment[n-1] {
		case '\'', 'h', 'H':
			digits, hardened = segment[:n-1], true
		}
	}

	if digits == "" {
		return 0, errors.New("empty index")
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, errors.New("leading zero")
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, errors.New("not a decimal index")
		}
	}
	// Indexes at or above 2^31 would alias hardened children.
	index, err := strconv.ParseUint(digits, 10, 31)
	if err != nil {
		return 0, errors.New("index out of range")
	}

	if hardened {
		return uint32(index) + HardenedOffset, nil
	}
	return uint32(index), nil
}

// FormatPath returns the canonical form of a derivation path.
func FormatPath(path accounts.DerivationPath) string {
	if len(path) == 0 {
		return "m"
	}
	return path.String()
}
