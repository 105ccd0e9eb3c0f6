package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned both when a row does not exist and when it
// exists under a different owner. The two cases are indistinguishable
// at every boundary above this one.
var ErrNotFound = errors.New("record not found")

const maxListLimit = 200

// Filter narrows a list query. Filters are ANDed together.
type Filter func(query *gorm.DB) *gorm.DB

func FieldEquals(column string, value any) Filter {
	return func(query *gorm.DB) *gorm.DB {
		return query.Where(fmt.Sprintf("%s = ?", column), value)
	}
}

func DateFrom(column string, from time.Time) Filter {
	return func(query *gorm.DB) *gorm.DB {
		return query.Where(fmt.Sprintf("%s >= ?", column), from)
	}
}

func DateTo(column string, to time.Time) Filter {
	return func(query *gorm.DB) *gorm.DB {
		return query.Where(fmt.Sprintf("%s <= ?", column), to)
	}
}

// ListOptions carries the caller-supplied filters and pagination.
// Zero values fall back to the repository defaults. Ascending flips
// the order for collections that read oldest first, chat transcripts
// and upcoming reminders.
type ListOptions struct {
	Filters   []Filter
	Limit     int
	Offset    int
	Ascending bool
}

// OwnedRepository is the one CRUD contract every owner-scoped entity
// shares. T must be a GORM model with `id` and `user_id` columns.
// Every read and write is filtered by (id, user_id) jointly; a row
// under another owner behaves exactly like a missing row.
type OwnedRepository[T any] struct {
	database     *gorm.DB
	orderColumn  string
	defaultLimit int
}

func NewOwnedRepository[T any](database *gorm.DB, orderColumn string, defaultLimit int) *OwnedRepository[T] {
	if orderColumn == "" {
		orderColumn = "created_at"
	}
	if defaultLimit <= 0 {
		defaultLimit = 30
	}
	return &OwnedRepository[T]{database: database, orderColumn: orderColumn, defaultLimit: defaultLimit}
}

// WithTx returns a copy of the repository bound to the transaction.
func (repo *OwnedRepository[T]) WithTx(tx *gorm.DB) *OwnedRepository[T] {
	return &OwnedRepository[T]{database: tx, orderColumn: repo.orderColumn, defaultLimit: repo.defaultLimit}
}

// Create persists the record. The caller sets the owner id from the
// authenticated user before calling; client input never reaches it.
func (repo *OwnedRepository[T]) Create(record *T) error {
	return repo.database.Create(record).Error
}

// List returns the owner's records, most recent first by the
// repository's timestamp column.
func (repo *OwnedRepository[T]) List(ownerID uint, opts ListOptions) ([]T, error) {
	query := repo.database.Model(new(T)).Where("user_id = ?", ownerID)
	for _, filter := range opts.Filters {
		query = filter(query)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = repo.defaultLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	direction := "DESC"
	if opts.Ascending {
		direction = "ASC"
	}

	records := make([]T, 0)
	err := query.
		Order(fmt.Sprintf("%s %s, id %s", repo.orderColumn, direction, direction)).
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *OwnedRepository[T]) Get(ownerID uint, id uint) (T, error) {
	var record T
	err := repo.database.Where("id = ? AND user_id = ?", id, ownerID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return record, ErrNotFound
	}
	if err != nil {
		return record, err
	}
	return record, nil
}

// Update applies partial semantics: only the supplied columns change,
// explicit nulls clear. An empty change set is a no-op that returns
// the row untouched (updated_at included).
func (repo *OwnedRepository[T]) Update(ownerID uint, id uint, changes map[string]any) (T, error) {
	current, err := repo.Get(ownerID, id)
	if err != nil {
		return current, err
	}
	if len(changes) == 0 {
		return current, nil
	}

	normalized, err := normalizeChanges(changes)
	if err != nil {
		return current, err
	}
	err = repo.database.Model(new(T)).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(normalized).Error
	if err != nil {
		return current, err
	}
	return repo.Get(ownerID, id)
}

// Map-based Updates bypass GORM's field serializers, so structured
// values are written as their JSON text, the same form serializer:json
// stores on create.
func normalizeChanges(changes map[string]any) (map[string]any, error) {
	normalized := make(map[string]any, len(changes))
	for column, value := range changes {
		if value == nil {
			normalized[column] = nil
			continue
		}
		switch value.(type) {
		case string, []byte, time.Time, *time.Time:
			normalized[column] = value
			continue
		}
		switch reflect.TypeOf(value).Kind() {
		case reflect.Slice, reflect.Map:
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", column, err)
			}
			normalized[column] = string(encoded)
		default:
			normalized[column] = value
		}
	}
	return normalized, nil
}

func (repo *OwnedRepository[T]) Delete(ownerID uint, id uint) error {
	result := repo.database.Where("id = ? AND user_id = ?", id, ownerID).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
