package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/Aleph-Alpha/searchspec/pkg/search"
)

// SearchObserver receives the outcome of every Search call, both
// successes and failures. Implementations must be safe for concurrent
// use.
type SearchObserver interface {
	ObserveSearch(elapsed time.Duration, err error)
}

// SearchOption customizes how a compiled request is lowered to SQL.
type SearchOption func(*searchOptions)

type searchOptions struct {
	columns  map[string]string
	observer SearchObserver
}

// WithColumnMapping overrides the derived column name for the given
// request keys. Keys absent from the map keep the default mapping.
func WithColumnMapping(columns map[string]string) SearchOption {
	return func(o *searchOptions) {
		o.columns = columns
	}
}

// WithSearchObserver registers an observer notified after each search.
func WithSearchObserver(observer SearchObserver) SearchOption {
	return func(o *searchOptions) {
		o.observer = observer
	}
}

func newSearchOptions(opts []SearchOption) *searchOptions {
	options := &searchOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Query is a compiled search lowered to GORM clauses. Where and Order
// can be inspected or applied to any *gorm.DB; Page keeps the
// normalized window for offset arithmetic and result assembly.
type Query struct {
	Where []clause.Expression
	Order []clause.OrderByColumn
	Page  search.PageRequest
}

// Apply attaches the query to tx: pagination, ordering, then filters.
func (q *Query) Apply(tx *gorm.DB) *gorm.DB {
	tx = tx.Limit(q.Page.Size).Offset(q.Page.Offset())
	if len(q.Order) > 0 {
		tx = tx.Clauses(clause.OrderBy{Columns: q.Order})
	}
	if len(q.Where) > 0 {
		tx = tx.Clauses(q.Where...)
	}
	return tx
}

// CompileSearch compiles req against spec and lowers the result to
// GORM clauses. Compilation errors pass through unchanged, so callers
// can inspect them with search.IsRequestError.
func (p *Postgres) CompileSearch(spec *search.Specification, req search.Request, opts ...SearchOption) (*Query, error) {
	options := newSearchOptions(opts)

	compiled, err := spec.Compile(req)
	if err != nil {
		return nil, err
	}

	where, err := lowerPredicate(compiled.Predicate, options)
	if err != nil {
		return nil, err
	}

	return &Query{
		Where: where,
		Order: lowerOrderings(compiled.Orderings, options),
		Page:  compiled.Page,
	}, nil
}

// Search compiles req against spec and executes it over rows of T,
// returning one page of results. The row count and the page content
// run as concurrent queries on separate sessions; the count ignores
// ordering and pagination so it reflects the full match set.
func Search[T any](ctx context.Context, p *Postgres, spec *search.Specification, req search.Request, opts ...SearchOption) (*search.Page[T], error) {
	options := newSearchOptions(opts)
	started := time.Now()

	query, err := p.CompileSearch(spec, req, opts...)
	if err != nil {
		if options.observer != nil {
			options.observer.ObserveSearch(time.Since(started), err)
		}
		return nil, err
	}

	var (
		rows  []T
		total int64
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		p.mu.RLock()
		defer p.mu.RUnlock()

		tx := p.client.WithContext(groupCtx).Model(new(T))
		if len(query.Where) > 0 {
			tx = tx.Clauses(query.Where...)
		}
		return tx.Count(&total).Error
	})

	group.Go(func() error {
		p.mu.RLock()
		defer p.mu.RUnlock()

		tx := query.Apply(p.client.WithContext(groupCtx).Model(new(T)))
		return tx.Find(&rows).Error
	})

	err = group.Wait()
	if options.observer != nil {
		options.observer.ObserveSearch(time.Since(started), err)
	}
	if err != nil {
		return nil, err
	}

	return search.NewPage(rows, query.Page, total), nil
}

var naming = schema.NamingStrategy{}

// columnName maps a resolved field to its column. Nested paths flatten
// segment by segment, so "maintainer.company.name" addresses the
// column "maintainer_company_name" unless a mapping overrides it.
func columnName(field *search.FieldRef, options *searchOptions) string {
	if column, ok := options.columns[field.Key]; ok {
		return column
	}

	segments := make([]string, 0, len(field.Path))
	for _, segment := range field.Path {
		segments = append(segments, naming.ColumnName("", segment))
	}
	return strings.Join(segments, "_")
}

func lowerPredicate(p search.Predicate, options *searchOptions) ([]clause.Expression, error) {
	var exprs []clause.Expression
	for _, conjunct := range search.Conjuncts(p) {
		lowered, err := lowerConjunct(conjunct, options)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, lowered...)
	}
	return exprs, nil
}

func lowerConjunct(p search.Predicate, options *searchOptions) ([]clause.Expression, error) {
	switch v := p.(type) {
	case search.True:
		return nil, nil
	case search.And:
		left, err := lowerConjunct(v.Left, options)
		if err != nil {
			return nil, err
		}
		right, err := lowerConjunct(v.Right, options)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	case search.Match:
		return []clause.Expression{clause.Eq{
			Column: columnName(v.Field, options),
			Value:  v.Value,
		}}, nil
	case search.NotMatch:
		return []clause.Expression{clause.Neq{
			Column: columnName(v.Field, options),
			Value:  v.Value,
		}}, nil
	case search.Contains:
		return []clause.Expression{clause.Expr{
			SQL: "UPPER(?) LIKE ?",
			Vars: []interface{}{
				clause.Column{Name: columnName(v.Field, options)},
				"%" + v.Value + "%",
			},
		}}, nil
	case search.In:
		return []clause.Expression{clause.IN{
			Column: columnName(v.Field, options),
			Values: v.Values,
		}}, nil
	case search.Between:
		column := columnName(v.Field, options)
		return []clause.Expression{
			clause.Gte{Column: column, Value: v.Low},
			clause.Lte{Column: column, Value: v.High},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported predicate %T", p)
	}
}

func lowerOrderings(orderings []search.Ordering, options *searchOptions) []clause.OrderByColumn {
	if len(orderings) == 0 {
		return nil
	}

	columns := make([]clause.OrderByColumn, 0, len(orderings))
	for _, ordering := range orderings {
		columns = append(columns, clause.OrderByColumn{
			Column: clause.Column{
				Name:  columnName(ordering.Field, options),
				Table: clause.CurrentTable,
			},
			Desc: ordering.Direction.Descending(),
		})
	}
	return columns
}
