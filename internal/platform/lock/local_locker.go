package lock

import (
	"context"

	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
)

// LocalLocker serializes postings within one process.
type LocalLocker struct {
	keys *KeyedMutex
}

var _ portssvc.ObligationLocker = (*LocalLocker)(nil)

// NewLocalLocker creates an in-process obligation locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{keys: NewKeyedMutex()}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	return l.keys.LockContext(ctx, key)
}
