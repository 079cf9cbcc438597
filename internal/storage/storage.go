// Package storage provides the durable local key-value layer behind the
// event store. Each entity kind is persisted as one JSON blob under its
// own key and rewritten in full on every mutation of that kind.
package storage

import "context"

// Kind names one persisted collection.
type Kind string

const (
	KindEvents  Kind = "events"
	KindTasks   Kind = "tasks"
	KindClasses Kind = "classes"
	KindUsers   Kind = "users"
)

// Repository is the persistence contract the store depends on. A
// missing kind loads as (nil, nil); only I/O level failures are errors.
// Corrupt payloads are the loader's problem, not the repository's.
type Repository interface {
	Load(ctx context.Context, kind Kind) ([]byte, error)
	Save(ctx context.Context, kind Kind, data []byte) error
	Close() error
}
