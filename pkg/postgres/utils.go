package postgres

import (
	"gorm.io/gorm"
)

// DB returns the underlying GORM client for cases the wrapper does not
// cover. The returned handle bypasses the reconnection lock; prefer the
// wrapper methods for anything long-running.
func (p *Postgres) DB() *gorm.DB {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client
}
