package store

import "context"

// Well-known collection names within the medium.
const (
	CollectionConversations = "conversations"
	CollectionMessages      = "messages"
)

// Medium is the persistence boundary: a small number of named records
// stored as opaque text. Collections are read and written wholesale;
// there is no partial update, callers read-modify-write the whole payload.
type Medium interface {
	// Load returns the payload for name. ok is false when no record
	// exists yet; that is the first-use bootstrap case, not an error.
	Load(ctx context.Context, name string) (payload string, ok bool, err error)

	// Save replaces the record for name entirely.
	Save(ctx context.Context, name, payload string) error
}
