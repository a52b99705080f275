package persistence

import (
	"errors"

	"github.com/erp/lpcore/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds a row lock held until the surrounding transaction ends
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// translateFindError maps a missing row to shared.ErrNotFound
func translateFindError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// updateWithVersion writes fields only while the stored version still equals version,
// bumping it by one. Zero affected rows means another transaction got there first.
func updateWithVersion(db *gorm.DB, model any, id any, version int, fields map[string]any, entity string) error {
	fields["version"] = version + 1
	result := db.Model(model).
		Where("id = ? AND version = ?", id, version).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewConcurrencyConflictError(entity + " was modified by another transaction")
	}
	return nil
}

// translateCreateError maps unique-key violations to a Validation error with the given code
func translateCreateError(err error, code, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewValidationError(code, message)
	}
	return err
}
