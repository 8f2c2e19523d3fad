package store

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "talent_messenger/pkg/errors"
)

const codecVersion = 1

// envelope wraps a persisted collection with a schema version so future
// field additions have a migration path.
type envelope struct {
	Version int             `json:"version"`
	Records json.RawMessage `json:"records"`
}

// LoadAll reads a full collection from the medium. A missing record yields
// an empty slice. A payload that cannot be decoded is ErrCorruptStore;
// there is no partial recovery.
func LoadAll[T any](ctx context.Context, m Medium, name string) ([]T, error) {
	payload, ok, err := m.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok || payload == "" {
		return []T{}, nil
	}

	data := []byte(payload)

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Pre-envelope payloads were a bare JSON array (version 0).
		// They are upgraded on the next SaveAll.
		var legacy []T
		if legacyErr := json.Unmarshal(data, &legacy); legacyErr == nil {
			return legacy, nil
		}
		return nil, fmt.Errorf("%w: collection %q: %v", apperrors.ErrCorruptStore, name, err)
	}

	if env.Version > codecVersion {
		return nil, fmt.Errorf("%w: collection %q has unsupported version %d", apperrors.ErrCorruptStore, name, env.Version)
	}

	if len(env.Records) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(env.Records, &records); err != nil {
		return nil, fmt.Errorf("%w: collection %q: %v", apperrors.ErrCorruptStore, name, err)
	}
	if records == nil {
		records = []T{}
	}

	return records, nil
}

// SaveAll replaces a full collection on the medium.
func SaveAll[T any](ctx context.Context, m Medium, name string, records []T) error {
	if records == nil {
		records = []T{}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", name, err)
	}

	payload, err := json.Marshal(envelope{Version: codecVersion, Records: raw})
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", name, err)
	}

	return m.Save(ctx, name, string(payload))
}
