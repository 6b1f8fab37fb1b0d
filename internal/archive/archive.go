// Package archive uploads CSV artifacts to long-term blob storage.
package archive

import "context"

// Store persists one artifact under an object name.
type Store interface {
	Save(ctx context.Context, objectName string, data []byte) error
	Close() error
}

// NoOpStore discards artifacts; used when no bucket is configured.
type NoOpStore struct{}

// Save for NoOpStore does nothing.
func (NoOpStore) Save(_ context.Context, _ string, _ []byte) error { return nil }

// Close for NoOpStore does nothing.
func (NoOpStore) Close() error { return nil }
