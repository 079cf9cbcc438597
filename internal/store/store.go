// Package store owns all events, tasks and classes. Every mutation is
// synchronous, writes through to the repository, and notifies
// subscribers; readers always observe the latest state.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	appLog "chronofy/internal/log"
	"chronofy/internal/model"
	"chronofy/internal/storage"
)

// Store is the single owner of all entity collections. It is passed by
// reference to every component that needs state; there is no package
// level singleton.
type Store struct {
	mu   sync.RWMutex
	repo storage.Repository
	loc  *time.Location

	events  []model.Event
	tasks   []model.Task
	classes []model.ClassInfo

	subMu       sync.Mutex
	subscribers []func()

	// now is swappable for tests.
	now func() time.Time
}

// New builds a store bound to repo, loading each collection
// independently. A missing or unparseable blob loads as an empty
// collection; startup never fails on bad persisted state.
func New(ctx context.Context, repo storage.Repository, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	s := &Store{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
	loadCollection(ctx, repo, storage.KindEvents, &s.events)
	loadCollection(ctx, repo, storage.KindTasks, &s.tasks)
	loadCollection(ctx, repo, storage.KindClasses, &s.classes)
	appLog.Info("store loaded",
		"events", len(s.events),
		"tasks", len(s.tasks),
		"classes", len(s.classes),
	)
	return s
}

func loadCollection[T any](ctx context.Context, repo storage.Repository, kind storage.Kind, out *[]T) {
	data, err := repo.Load(ctx, kind)
	if err != nil {
		appLog.Error("store: load failed, starting empty", err, "kind", string(kind))
		return
	}
	if len(data) == 0 {
		return
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		appLog.Error("store: corrupt collection, starting empty", err, "kind", string(kind))
		return
	}
	*out = items
}

// Location returns the display timezone the store was built with.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Subscribe registers fn to be called synchronously after every
// mutation. Subscribers must not mutate the store re-entrantly.
func (s *Store) Subscribe(fn func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// persist serializes one collection and writes it through. Failures are
// logged, never propagated: persistence is fire-and-forget and a failed
// write must not roll back an in-memory mutation.
func (s *Store) persist(kind storage.Kind, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		appLog.Error("store: marshal failed", err, "kind", string(kind))
		return
	}
	if err := s.repo.Save(context.Background(), kind, data); err != nil {
		appLog.Error("store: save failed", err, "kind", string(kind))
	}
}

// newID returns a fresh random id. Generated class events use a
// "classID::date" composite instead, and since these ids are plain hex
// the two schemes cannot collide.
func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Fall back to a time-based id; collisions are vanishingly
		// unlikely at interactive rates.
		return hex.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b[:])
}
