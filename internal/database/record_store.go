package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned by SelectOne when no row matches the filters
	ErrNotFound = errors.New("record not found")

	// ErrInvalidIdentifier is returned for table or column names outside [a-z0-9_]
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrEmptyRecord is returned when inserting or updating with no fields
	ErrEmptyRecord = errors.New("record has no fields")
)

var identifierRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Field is one column/value pair of a record
type Field struct {
	Column string
	Value  interface{}
}

// Record is an ordered list of fields written as one row
type Record []Field

// Columns returns the column names in order
func (r Record) Columns() []string {
	cols := make([]string, len(r))
	for i, f := range r {
		cols[i] = f.Column
	}
	return cols
}

// Filter is an equality predicate on one column
type Filter struct {
	Column string
	Value  interface{}
}

// Eq builds an equality filter
func Eq(column string, value interface{}) Filter {
	return Filter{Column: column, Value: value}
}

// Order is one ORDER BY term
type Order struct {
	Column string
	Desc   bool
}

// Asc and Desc build ordering terms
func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Query describes a filtered, ordered projection over one collection
type Query struct {
	Table   string
	Columns []string
	Filters []Filter
	OrderBy []Order
	Limit   int
}

// InsertResult carries the store-assigned identity of a new row
type InsertResult struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Store is the keyed-record store used by the intake and content services
type Store interface {
	Insert(ctx context.Context, table string, rec Record) (*InsertResult, error)
	Select(ctx context.Context, dest interface{}, q Query) error
	SelectOne(ctx context.Context, dest interface{}, q Query) error
	Update(ctx context.Context, table string, set Record, filters []Filter) (int64, error)
}

// RecordStore implements Store on top of a sqlx connection
type RecordStore struct {
	db DB
}

// NewRecordStore creates a new record store
func NewRecordStore(db DB) *RecordStore {
	return &RecordStore{db: db}
}

// Insert writes one row and returns the generated id and creation timestamp
func (s *RecordStore) Insert(ctx context.Context, table string, rec Record) (*InsertResult, error) {
	if err := checkIdentifiers(table, rec.Columns()...); err != nil {
		return nil, err
	}
	if len(rec) == 0 {
		return nil, ErrEmptyRecord
	}

	placeholders := make([]string, len(rec))
	args := make([]interface{}, len(rec))
	for i, f := range rec {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = f.Value
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id, created_at",
		table, strings.Join(rec.Columns(), ", "), strings.Join(placeholders, ", "),
	)

	var result InsertResult
	if err := s.db.QueryRowxContext(ctx, query, args...).StructScan(&result); err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return &result, nil
}

// Select runs the query and scans all rows into dest (a pointer to a slice)
func (s *RecordStore) Select(ctx context.Context, dest interface{}, q Query) error {
	query, args, err := buildSelect(q)
	if err != nil {
		return err
	}
	if err := s.db.SelectContext(ctx, dest, query, args...); err != nil {
		return fmt.Errorf("failed to select from %s: %w", q.Table, err)
	}
	return nil
}

// SelectOne scans the first matching row into dest, or returns ErrNotFound
func (s *RecordStore) SelectOne(ctx context.Context, dest interface{}, q Query) error {
	q.Limit = 1
	query, args, err := buildSelect(q)
	if err != nil {
		return err
	}
	if err := s.db.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to select from %s: %w", q.Table, err)
	}
	return nil
}

// Update sets the given fields on every row matching the filters
func (s *RecordStore) Update(ctx context.Context, table string, set Record, filters []Filter) (int64, error) {
	if len(set) == 0 {
		return 0, ErrEmptyRecord
	}
	if err := checkIdentifiers(table, set.Columns()...); err != nil {
		return 0, err
	}

	assignments := make([]string, len(set))
	args := make([]interface{}, 0, len(set)+len(filters))
	for i, f := range set {
		args = append(args, f.Value)
		assignments[i] = fmt.Sprintf("%s = $%d", f.Column, len(args))
	}

	where, args, err := buildWhere(filters, args)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("UPDATE %s SET %s%s", table, strings.Join(assignments, ", "), where)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", table, err)
	}
	return res.RowsAffected()
}

func buildSelect(q Query) (string, []interface{}, error) {
	if err := checkIdentifiers(q.Table, q.Columns...); err != nil {
		return "", nil, err
	}

	columns := "*"
	if len(q.Columns) > 0 {
		columns = strings.Join(q.Columns, ", ")
	}

	where, args, err := buildWhere(q.Filters, nil)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s%s", columns, q.Table, where)

	if len(q.OrderBy) > 0 {
		terms := make([]string, len(q.OrderBy))
		for i, o := range q.OrderBy {
			if !identifierRegex.MatchString(o.Column) {
				return "", nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, o.Column)
			}
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			terms[i] = o.Column + " " + dir
		}
		sb.WriteString(" ORDER BY " + strings.Join(terms, ", "))
	}

	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	return sb.String(), args, nil
}

func buildWhere(filters []Filter, args []interface{}) (string, []interface{}, error) {
	if len(filters) == 0 {
		return "", args, nil
	}
	clauses := make([]string, len(filters))
	for i, f := range filters {
		if !identifierRegex.MatchString(f.Column) {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, f.Column)
		}
		args = append(args, f.Value)
		clauses[i] = fmt.Sprintf("%s = $%d", f.Column, len(args))
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func checkIdentifiers(table string, columns ...string) error {
	if !identifierRegex.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, table)
	}
	for _, c := range columns {
		if !identifierRegex.MatchString(c) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, c)
		}
	}
	return nil
}
