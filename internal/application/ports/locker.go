package ports

import (
	"context"
	"time"
)

// Locker exclusión mutua entre procesos para los jobs periódicos.
type Locker interface {
	// TryLock devuelve false si otro proceso tiene el lock.
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// Deduper evita repetir una alerta dentro de la ventana ttl.
type Deduper interface {
	// FirstSeen devuelve true la primera vez que se ve key dentro de ttl.
	FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
