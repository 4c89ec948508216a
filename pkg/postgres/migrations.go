package postgres

// Migrate auto-migrates the schema for the provided models. It takes
// the write lock so no query overlaps a schema change.
func (p *Postgres) Migrate(models ...interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.client.AutoMigrate(models...)
}
