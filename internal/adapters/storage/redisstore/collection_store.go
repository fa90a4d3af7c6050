package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_books/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_books/internal/core/ports/repositories"
	"github.com/go-redis/redis/v8"
)

// CollectionStore keeps each collection as one JSON array under
// "<prefix>:collection:<name>". It is the fallback cache behind the
// primary store.
type CollectionStore struct {
	client *redis.Client
	prefix string
}

var _ portsrepo.CollectionStore = (*CollectionStore)(nil)

// NewCollectionStore creates a store over an existing client.
func NewCollectionStore(client *redis.Client, prefix string) *CollectionStore {
	if prefix == "" {
		prefix = "ledgers"
	}
	return &CollectionStore{client: client, prefix: prefix}
}

func (s *CollectionStore) key(collection string) string {
	return fmt.Sprintf("%s:collection:%s", s.prefix, collection)
}

func (s *CollectionStore) Get(ctx context.Context, collection string) ([]json.RawMessage, error) {
	payload, err := s.client.Get(ctx, s.key(collection)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read collection %s from redis: %w", collection, err)
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(payload, &docs); err != nil {
		return nil, fmt.Errorf("collection %s in redis is not a JSON array: %w", collection, err)
	}
	return docs, nil
}

func (s *CollectionStore) Set(ctx context.Context, collection string, documents []json.RawMessage) error {
	if documents == nil {
		documents = []json.RawMessage{}
	}
	payload, err := json.Marshal(documents)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", collection, err)
	}
	if err := s.client.Set(ctx, s.key(collection), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write collection %s to redis: %w", collection, err)
	}
	return nil
}

// Ping checks the connection.
func (s *CollectionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
