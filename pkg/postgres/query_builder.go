package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Query starts a fluent query chain. It takes the read lock, which is
// released when a terminal method runs or Done is called; every chain
// must end in one of the two.
//
// Example:
//
//	var systems []OperatingSystem
//	err := db.Query(ctx).
//	    Where("usages > ?", 500).
//	    Order("release_date DESC").
//	    Limit(10).
//	    Find(&systems)
func (p *Postgres) Query(ctx context.Context) *QueryBuilder {
	p.mu.RLock()
	return &QueryBuilder{
		db:      p.client.WithContext(ctx),
		release: p.mu.RUnlock,
	}
}

// QueryBuilder chains GORM query modifiers under the wrapper's read
// lock. Modifier methods return the builder; terminal methods execute
// the query and release the lock.
type QueryBuilder struct {
	db *gorm.DB

	// release returns the read lock taken by Query.
	release func()
}

// Select specifies the fields to select.
//
//	qb.Select("name, kernel")
//	qb.Select("COUNT(*) as installs")
func (qb *QueryBuilder) Select(query interface{}, args ...interface{}) *QueryBuilder {
	qb.db = qb.db.Select(query, args...)
	return qb
}

// Where adds a condition; multiple calls combine with AND.
func (qb *QueryBuilder) Where(query interface{}, args ...interface{}) *QueryBuilder {
	qb.db = qb.db.Where(query, args...)
	return qb
}

// Or combines a condition with the previous ones using OR.
func (qb *QueryBuilder) Or(query interface{}, args ...interface{}) *QueryBuilder {
	qb.db = qb.db.Or(query, args...)
	return qb
}

// Not negates a condition.
func (qb *QueryBuilder) Not(query interface{}, args ...interface{}) *QueryBuilder {
	qb.db = qb.db.Not(query, args...)
	return qb
}

// Joins adds a JOIN clause.
//
//	qb.Joins("JOIN maintainers ON maintainers.id = operating_systems.maintainer_id")
func (qb *QueryBuilder) Joins(query string, args ...interface{}) *QueryBuilder {
	qb.db = qb.db.Joins(query, args...)
	return qb
}

// LeftJoin adds a LEFT JOIN clause; query carries everything after the
// "LEFT JOIN" keywords.
func (qb *QueryBuilder) LeftJoin(query string, args ...interface{}) *QueryBuilder {
	joinClause := "LEFT JOIN " + query
	qb.db = qb.db.Joins(joinClause, args...)
	return qb
}

// RightJoin adds a RIGHT JOIN clause; query carries everything after
// the "RIGHT JOIN" keywords.
func (qb *QueryBuilder) RightJoin(query string, args ...interface{}) *QueryBuilder {
	joinClause := "RIGHT JOIN " + query
	qb.db = qb.db.Joins(joinClause, args...)
	return qb
}

// Preload eagerly loads an association for the results.
//
//	qb.Preload("Maintainer")
func (qb *QueryBuilder) Preload(query string, args ...interface{}) *QueryBuilder {
	qb.db = qb.db.Preload(query, args...)
	return qb
}

// Group adds a GROUP BY clause.
func (qb *QueryBuilder) Group(query string) *QueryBuilder {
	qb.db = qb.db.Group(query)
	return qb
}

// Having filters groups produced by Group.
//
//	qb.Group("kernel").Having("COUNT(*) > ?", 1)
func (qb *QueryBuilder) Having(query interface{}, args ...interface{}) *QueryBuilder {
	qb.db = qb.db.Having(query, args...)
	return qb
}

// Order adds an ORDER BY clause.
//
//	qb.Order("usages DESC, name ASC")
func (qb *QueryBuilder) Order(value interface{}) *QueryBuilder {
	qb.db = qb.db.Order(value)
	return qb
}

// Limit caps the number of returned records.
func (qb *QueryBuilder) Limit(limit int) *QueryBuilder {
	qb.db = qb.db.Limit(limit)
	return qb
}

// Offset skips the given number of records; combined with Limit it
// implements pagination.
func (qb *QueryBuilder) Offset(offset int) *QueryBuilder {
	qb.db = qb.db.Offset(offset)
	return qb
}

// Raw replaces the query with raw SQL.
//
//	qb.Raw("SELECT * FROM operating_systems WHERE release_date > ?", cutoff)
func (qb *QueryBuilder) Raw(sql string, values ...interface{}) *QueryBuilder {
	qb.db = qb.db.Raw(sql, values...)
	return qb
}

// Model sets the model for queries that cannot infer it, such as Count.
func (qb *QueryBuilder) Model(value interface{}) *QueryBuilder {
	qb.db = qb.db.Model(value)
	return qb
}

// Distinct eliminates duplicate rows, optionally over specific columns.
//
//	qb.Distinct("kernel").Find(&kernels)
func (qb *QueryBuilder) Distinct(args ...interface{}) *QueryBuilder {
	qb.db = qb.db.Distinct(args...)
	return qb
}

// Scan executes the query and scans the result into dest. Terminal.
func (qb *QueryBuilder) Scan(dest interface{}) error {
	defer qb.release()
	return qb.db.Scan(dest).Error
}

// Find executes the query and loads all matching records. Terminal.
func (qb *QueryBuilder) Find(dest interface{}) error {
	defer qb.release()
	return qb.db.Find(dest).Error
}

// First loads the first matching record. Terminal.
func (qb *QueryBuilder) First(dest interface{}) error {
	defer qb.release()
	return qb.db.First(dest).Error
}

// Last loads the last matching record. Terminal.
func (qb *QueryBuilder) Last(dest interface{}) error {
	defer qb.release()
	return qb.db.Last(dest).Error
}

// Count counts matching records. Terminal.
func (qb *QueryBuilder) Count(count *int64) error {
	defer qb.release()
	return qb.db.Count(count).Error
}

// Updates applies the given values to matching records. Terminal.
func (qb *QueryBuilder) Updates(values interface{}) error {
	defer qb.release()
	return qb.db.Updates(values).Error
}

// Delete removes matching records. Terminal.
func (qb *QueryBuilder) Delete(value interface{}) error {
	defer qb.release()
	return qb.db.Delete(value).Error
}

// Pluck queries a single column into a slice. Terminal.
//
//	var names []string
//	err := qb.Model(&OperatingSystem{}).Pluck("name", &names)
func (qb *QueryBuilder) Pluck(column string, dest interface{}) error {
	defer qb.release()
	return qb.db.Pluck(column, dest).Error
}

// Done releases the lock without executing anything. Call it when a
// chain is abandoned before reaching a terminal method.
func (qb *QueryBuilder) Done() {
	qb.release()
}
