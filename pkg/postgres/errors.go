package postgres

import (
	"errors"

	"gorm.io/gorm"
)

// Standardized database errors. Consumers match on these instead of on
// GORM's sentinels, keeping application code free of the ORM dependency.
var (
	// ErrRecordNotFound is returned when a query matches no records
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when a write violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key constraint
	ErrForeignKey = errors.New("foreign key violation")

	// ErrInvalidData is returned when the data being saved is malformed
	ErrInvalidData = errors.New("invalid data")
)

// TranslateError maps GORM errors onto the standardized set above.
// Errors without a mapping pass through unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, gorm.ErrInvalidData):
		return ErrInvalidData
	}

	return err
}
