// Package option carries composable query modifiers for the generic
// repository store.
package option

import (
	"fmt"

	"gorm.io/gorm"
)

type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type queryOptionFunc func(*gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

type Operator string

const (
	EQ  Operator = "="
	GT  Operator = ">"
	GTE Operator = ">="
	LT  Operator = "<"
	LTE Operator = "<="
)

type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// ApplyOperator adds a comparison condition on a column.
func ApplyOperator(c Condition) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("%s %s ?", c.Field, c.Operator), c.Value)
	})
}

type QuerySortBy struct {
	Field   string
	Desc    bool
	Allow   map[string]bool
	Default string
}

// WithSortBy orders by an allow-listed column, falling back to the default
// (or created_at) when the requested field is not allowed.
func (s QuerySortBy) apply(db *gorm.DB) *gorm.DB {
	field := s.Field
	if field == "" || !s.Allow[field] {
		field = s.Default
	}
	if field == "" {
		field = "created_at"
	}
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", field, direction))
}

func WithSortBy(s QuerySortBy) QueryOption {
	return queryOptionFunc(s.apply)
}

// WithLimit caps the number of returned rows.
func WithLimit(n int) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if n <= 0 {
			return db
		}
		return db.Limit(n)
	})
}
