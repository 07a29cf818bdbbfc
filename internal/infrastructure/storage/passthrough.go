package storage

import "context"

// PassthroughAvatarStore keeps the provider URL as is. Used when object
// storage is not configured.
type PassthroughAvatarStore struct{}

func (PassthroughAvatarStore) Store(_ context.Context, _ string, sourceURL string) string {
	return sourceURL
}
