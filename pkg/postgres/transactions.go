package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Transaction runs fn inside a database transaction, committing on nil
// and rolling back on error or panic.
func (p *Postgres) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Transaction(fn)
}
