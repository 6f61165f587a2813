package roster

import (
	"context"

	"pickterm/internal/model"
	"pickterm/internal/store"
)

// Source supplies roster records for ingestion. The TUI reloads through the
// same source when the roster changes.
type Source interface {
	Load(ctx context.Context) ([]model.RawRecipient, error)
	String() string
}

// FileSource loads the roster from a YAML file.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) ([]model.RawRecipient, error) {
	return LoadFile(s.Path)
}

func (s FileSource) String() string { return "file:" + s.Path }

// StoreSource loads the roster from the sqlite roster store.
type StoreSource struct {
	Store *store.RosterStore
}

func (s StoreSource) Load(ctx context.Context) ([]model.RawRecipient, error) {
	return s.Store.LoadRoster(ctx)
}

func (s StoreSource) String() string { return "db" }
