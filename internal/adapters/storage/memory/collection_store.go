package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/SscSPs/ledger_books/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_books/internal/core/ports/repositories"
)

// CollectionStore is an in-memory CollectionStore. It backs tests and runs
// without a database. Documents are copied on the way in and out.
type CollectionStore struct {
	mu          sync.Mutex
	collections map[string][]json.RawMessage
	getErr      error
	setErrs     map[string]error
	sets        []string
	afterSet    func(collection string)
}

var _ portsrepo.CollectionStore = (*CollectionStore)(nil)

// NewCollectionStore creates an empty store.
func NewCollectionStore() *CollectionStore {
	return &CollectionStore{
		collections: make(map[string][]json.RawMessage),
		setErrs:     make(map[string]error),
	}
}

// WithGetError makes every subsequent Get fail with err.
func (m *CollectionStore) WithGetError(err error) *CollectionStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
	return m
}

// FailSet makes Set on the named collection fail with err.
func (m *CollectionStore) FailSet(collection string, err error) *CollectionStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErrs[collection] = err
	return m
}

// AfterSet registers fn to run after every successful Set.
func (m *CollectionStore) AfterSet(fn func(collection string)) *CollectionStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.afterSet = fn
	return m
}

// Seed stores values as a collection, marshalling each one.
func (m *CollectionStore) Seed(collection string, values ...any) error {
	docs := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		docs = append(docs, raw)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = docs
	return nil
}

// SetCalls returns the collections written so far, in order.
func (m *CollectionStore) SetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sets...)
}

func (m *CollectionStore) Get(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}
	docs, ok := m.collections[collection]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cloneDocs(docs), nil
}

func (m *CollectionStore) Set(ctx context.Context, collection string, documents []json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	if err := m.setErrs[collection]; err != nil {
		m.mu.Unlock()
		return err
	}
	m.collections[collection] = cloneDocs(documents)
	m.sets = append(m.sets, collection)
	hook := m.afterSet
	m.mu.Unlock()

	if hook != nil {
		hook(collection)
	}
	return nil
}

func cloneDocs(docs []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		out[i] = append(json.RawMessage(nil), d...)
	}
	return out
}
