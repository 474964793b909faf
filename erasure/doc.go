// Package erasure implements the systematic Reed-Solomon coder used to split a
// wallet secret into data and parity fragments and to rebuild it from any
// subset of at least DataShards fragments.
//
// Coding is exact over GF(2^8): encoding followed by reconstruction from any
// DataShards-sized subset returns byte-identical data. After reconstruction the
// parity is recomputed from the data fragments and compared, so a fragment that
// was corrupted, or decoded with the wrong parameters, is reported as
// interfaces.ErrVerification instead of being silently accepted.
//
// Fragment sets are plain [][]byte values. A nil or empty slot marks a missing
// fragment:
//
//	frags, err := erasure.EncodeShards(secret, 2, 3)
//	frags[0], frags[1] = nil, nil
//	secret, err = erasure.DecodeShards(frags, 2, 3)
package erasure
