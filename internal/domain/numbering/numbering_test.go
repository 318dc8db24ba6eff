package numbering_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrisx-39/FormMaster/internal/domain/numbering"
)

type counter struct {
	mu     sync.Mutex
	values map[string]int64
	err    error
}

func (c *counter) NextValue(_ context.Context, prefix string, year int) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = map[string]int64{}
	}
	key := fmt.Sprintf("%s/%d", prefix, year)
	c.values[key]++
	return c.values[key], nil
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "INV-2026-0001", numbering.Format(numbering.Invoice, 2026, 1))
	assert.Equal(t, "QT-2026-0123", numbering.Format(numbering.Quotation, 2026, 123))
	assert.Equal(t, "OR-2026-12345", numbering.Format(numbering.HireOrder, 2026, 12345))
}

func TestNext_ContadorPorPrefijoYAnio(t *testing.T) {
	c := &counter{}
	ctx := context.Background()
	d2026 := time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)

	n1, err := numbering.Next(ctx, c, numbering.Invoice, d2026)
	require.NoError(t, err)
	n2, _ := numbering.Next(ctx, c, numbering.Invoice, d2026)
	other, _ := numbering.Next(ctx, c, numbering.Payment, d2026)
	nextYear, _ := numbering.Next(ctx, c, numbering.Invoice, d2026.AddDate(0, 0, 1))

	assert.Equal(t, "INV-2026-0001", n1)
	assert.Equal(t, "INV-2026-0002", n2)
	assert.Equal(t, "PAY-2026-0001", other)
	assert.Equal(t, "INV-2027-0001", nextYear)
}

func TestNext_ConcurrenteSinDuplicados(t *testing.T) {
	c := &counter{}
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := numbering.Next(ctx, c, numbering.HireOrder, now)
			assert.NoError(t, err)
			mu.Lock()
			seen[n] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}

func TestNext_PropagaError(t *testing.T) {
	c := &counter{err: errors.New("db caída")}
	_, err := numbering.Next(context.Background(), c, numbering.Client, time.Now())
	assert.ErrorContains(t, err, "db caída")
}
