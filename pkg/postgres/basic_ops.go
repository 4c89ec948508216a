package postgres

import (
	"context"
)

// Find loads all records matching the given conditions into dest.
func (p *Postgres) Find(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Find(dest, conditions...).Error
}

// First loads the first record matching the given conditions into dest.
func (p *Postgres) First(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).First(dest, conditions...).Error
}

// Create inserts a new record.
func (p *Postgres) Create(ctx context.Context, value interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Create(value).Error
}

// Save writes back a full record, inserting it if it has no primary key.
func (p *Postgres) Save(ctx context.Context, value interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Save(value).Error
}

// Update applies attrs to records matching model. attrs may be a map,
// a struct or name/value pairs.
func (p *Postgres) Update(ctx context.Context, model interface{}, attrs interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Model(model).Updates(attrs).Error
}

// UpdateColumn sets a single column on records matching model.
func (p *Postgres) UpdateColumn(ctx context.Context, model interface{}, columnName string, value interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Model(model).Update(columnName, value).Error
}

// UpdateColumns sets multiple columns on records matching model.
func (p *Postgres) UpdateColumns(ctx context.Context, model interface{}, columnValues map[string]interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Model(model).Updates(columnValues).Error
}

// Delete removes records matching the given conditions.
func (p *Postgres) Delete(ctx context.Context, value interface{}, conditions ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Delete(value, conditions...).Error
}

// Exec runs raw SQL.
func (p *Postgres) Exec(ctx context.Context, sql string, values ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Exec(sql, values...).Error
}

// Count counts records of model matching the given conditions. Without
// conditions it counts the whole table.
func (p *Postgres) Count(ctx context.Context, model interface{}, count *int64, conditions ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	tx := p.client.WithContext(ctx).Model(model)
	if len(conditions) > 0 {
		tx = tx.Where(conditions[0], conditions[1:]...)
	}
	return tx.Count(count).Error
}

// UpdateWhere applies attrs to records of model matching condition.
func (p *Postgres) UpdateWhere(ctx context.Context, model interface{}, attrs interface{}, condition string, args ...interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.client.WithContext(ctx).Model(model).Where(condition, args...).Updates(attrs).Error
}
