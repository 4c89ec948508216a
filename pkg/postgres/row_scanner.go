package postgres

import (
	"gorm.io/gorm"
)

// RowScanner scans column values out of a single row.
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// RowsScanner iterates over a row set. Callers must Close it.
type RowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Close() error
	Err() error
}

// QueryRow executes the chain and returns a scanner for its single
// row. Terminal.
//
//	var total int64
//	db.Query(ctx).Raw("SELECT COUNT(*) FROM operating_systems").QueryRow().Scan(&total)
func (qb *QueryBuilder) QueryRow() RowScanner {
	defer qb.release()
	return qb.db.Row()
}

// QueryRows executes the chain and returns a scanner over all result
// rows. Terminal.
func (qb *QueryBuilder) QueryRows() (RowsScanner, error) {
	defer qb.release()
	return qb.db.Rows()
}

// ScanRow executes the chain and scans one row into a struct. Terminal.
func (qb *QueryBuilder) ScanRow(dest interface{}) error {
	defer qb.release()
	return qb.db.Scan(dest).Error
}

// MapRows hands the prepared query to mapFn for custom row handling.
// Terminal.
func (qb *QueryBuilder) MapRows(destSlice interface{}, mapFn func(*gorm.DB) error) error {
	defer qb.release()
	return mapFn(qb.db)
}
