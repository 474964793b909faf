// Package interfaces defines the types and contracts shared by the shard
// wallet packages, separating interface definitions from implementations.
package interfaces
