// Package redis locks entre procesos para los jobs y deduplicación de alertas.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Chrisx-39/FormMaster/internal/application/ports"
)

var (
	_ ports.Locker  = (*Locker)(nil)
	_ ports.Deduper = (*Deduper)(nil)
	_ ports.Locker  = (*LocalLocker)(nil)
)

// Config conexión a Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient abre el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg Config) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// unlockScript borra la clave solo si sigue siendo nuestra.
var unlockScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Locker SET NX con TTL; el token evita liberar el lock de otro proceso tras expirar el nuestro.
type Locker struct {
	rdb    *goredis.Client
	mu     sync.Mutex
	tokens map[string]string
}

func NewLocker(rdb *goredis.Client) *Locker {
	return &Locker{rdb: rdb, tokens: make(map[string]string)}
}

func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	token := uuid.New().String()
	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis lock %s: %w", key, err)
	}
	if ok {
		l.mu.Lock()
		l.tokens[key] = token
		l.mu.Unlock()
	}
	return ok, nil
}

func (l *Locker) Unlock(ctx context.Context, key string) error {
	l.mu.Lock()
	token, ok := l.tokens[key]
	delete(l.tokens, key)
	l.mu.Unlock()
	if !ok {
		return nil
	}
	if err := unlockScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis unlock %s: %w", key, err)
	}
	return nil
}

// Deduper primera aparición de una clave dentro de la ventana.
type Deduper struct {
	rdb *goredis.Client
}

func NewDeduper(rdb *goredis.Client) *Deduper { return &Deduper{rdb: rdb} }

func (d *Deduper) FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := d.rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis dedupe %s: %w", key, err)
	}
	return ok, nil
}

// LocalLocker locks en memoria para un único worker sin Redis.
type LocalLocker struct {
	mu    sync.Mutex
	until map[string]time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{until: make(map[string]time.Time)}
}

func (l *LocalLocker) TryLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	if exp, ok := l.until[key]; ok && now.Before(exp) {
		return false, nil
	}
	l.until[key] = now.Add(ttl)
	return true, nil
}

func (l *LocalLocker) Unlock(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.until, key)
	l.mu.Unlock()
	return nil
}

// LocalDeduper ventana de deduplicación en memoria.
type LocalDeduper struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

func NewLocalDeduper() *LocalDeduper {
	return &LocalDeduper{seen: make(map[string]time.Time)}
}

func (d *LocalDeduper) FirstSeen(_ context.Context, key string, ttl time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	if exp, ok := d.seen[key]; ok && now.Before(exp) {
		return false, nil
	}
	d.seen[key] = now.Add(ttl)
	return true, nil
}
