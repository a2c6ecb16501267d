package store

import "gorm.io/gorm"

// Create inserts value; a unique violation comes back as ErrDuplicate.
func Create(db *gorm.DB, value any) error {
	return Translate(db.Create(value).Error)
}

// First loads the first row matching conds into dest or returns ErrNotFound.
func First(db *gorm.DB, dest any, conds ...any) error {
	return Translate(db.First(dest, conds...).Error)
}

// Exists reports whether any row of model matches the query.
func Exists(db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, Translate(err)
	}
	return count > 0, nil
}

// Updates applies patch to the rows of model matching the query. It returns
// ErrNotFound when no row matched so callers can tell a missing key from a
// no-op patch.
func Updates(db *gorm.DB, model any, patch map[string]any, query string, args ...any) error {
	exists, err := Exists(db, model, query, args...)
	if err != nil {
		return err
	}
	if !exists {
		return &Error{Kind: KindNotFound, Cause: gorm.ErrRecordNotFound}
	}
	if len(patch) == 0 {
		return nil
	}
	return Translate(db.Model(model).Where(query, args...).Updates(patch).Error)
}

// Delete removes the rows of model matching the query or returns ErrNotFound
// when there were none.
func Delete(db *gorm.DB, model any, query string, args ...any) error {
	result := db.Where(query, args...).Delete(model)
	if result.Error != nil {
		return Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return &Error{Kind: KindNotFound, Cause: gorm.ErrRecordNotFound}
	}
	return nil
}
