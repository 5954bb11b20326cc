// Package gateways defines contracts for infrastructure the domain depends on.
package gateways

import (
	"context"

	"github.com/ochairo/regguard/internal/domain/entities"
)

// ChecksumGenerator computes content digests for files and directories
type ChecksumGenerator interface {
	// Generate digests every input path; missing inputs are skipped
	Generate(paths []string, mode entities.ChecksumMode) (entities.Checksums, error)
}

// BaselineStore reads and writes baseline blobs keyed by business operation
type BaselineStore interface {
	// Get returns the blob stored under key; found is false when absent
	Get(ctx context.Context, key string) (blob string, found bool, err error)

	// Put replaces the blob stored under key, leaving other keys untouched
	Put(ctx context.Context, key, blob string) error

	// Close releases the connection
	Close() error
}

// BaselineStoreProvider opens a store connection for one logical operation
type BaselineStoreProvider interface {
	Open(ctx context.Context) (BaselineStore, error)
}

// BaselineSigner produces armored detached signatures over baseline blobs
type BaselineSigner interface {
	Sign(blob string) (string, error)
}

// BaselineVerifier checks armored detached signatures over baseline blobs
type BaselineVerifier interface {
	Verify(blob, signature string) error
}
