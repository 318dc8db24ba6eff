package postgres

import (
	"context"

	"github.com/Chrisx-39/FormMaster/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo numeración correlativa por prefijo y año.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el contador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// NextValue el upsert toma el lock de la fila, dos transacciones nunca obtienen el mismo valor.
func (r *SequenceRepo) NextValue(ctx context.Context, prefix string, year int) (int64, error) {
	var v int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_sequences (prefix, year, last_value) VALUES ($1, $2, 1)
		ON CONFLICT (prefix, year) DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`, prefix, year).Scan(&v)
	if err != nil {
		return 0, wrapErr("next sequence value", err)
	}
	return v, nil
}
