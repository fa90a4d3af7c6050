package jsondocs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/SscSPs/ledger_books/internal/platform/logging"
)

// Decode decodes each document on its own. Documents that do not decode are
// skipped and logged, so one bad record never hides the rest of a collection.
func Decode[T any](ctx context.Context, collection string, docs []json.RawMessage) []T {
	out := make([]T, 0, len(docs))
	for i, doc := range docs {
		var v T
		if err := json.Unmarshal(doc, &v); err != nil {
			logging.FromContextOrDefault(ctx).Warn("Skipping undecodable document",
				slog.String("collection", collection),
				slog.Int("index", i),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, v)
	}
	return out
}
