package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schemalens/schemalens/internal/core/domain"
	"github.com/schemalens/schemalens/internal/core/port"
	"golang.org/x/sync/errgroup"
)

const defaultFanout = 4

// Extractor reads Postgres catalog metadata into a schema model. Per-table
// reads run concurrently up to the fan-out limit, but tables keep catalog
// order in the result regardless of completion order.
type Extractor struct {
	pool   *pgxpool.Pool
	schema string
	fanout int
}

func NewExtractor(pool *pgxpool.Pool, schema string, fanout int) *Extractor {
	if schema == "" {
		schema = "public"
	}
	if fanout < 1 {
		fanout = defaultFanout
	}
	return &Extractor{pool: pool, schema: schema, fanout: fanout}
}

func (e *Extractor) ExtractSchema(ctx context.Context, opts port.ExtractOptions) (domain.SchemaModel, error) {
	names, err := e.listTables(ctx)
	if err != nil {
		return domain.SchemaModel{}, fmt.Errorf("listing tables: %w", err)
	}

	tables := make([]domain.Table, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.fanout)
	for i, name := range names {
		g.Go(func() error {
			table, err := e.fetchTable(gctx, name, opts)
			if err != nil {
				return err
			}
			tables[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.SchemaModel{}, err
	}

	return domain.SchemaModel{Tables: tables}, nil
}

func (e *Extractor) listTables(ctx context.Context) ([]string, error) {
	rows, err := e.pool.Query(ctx, queryListTables, e.schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// fetchTable reads one table's full definition. Catalog read failures are
// fatal; a sample read failure marks the table degraded instead.
func (e *Extractor) fetchTable(ctx context.Context, name string, opts port.ExtractOptions) (domain.Table, error) {
	table := domain.Table{Name: name}

	var err error
	table.Columns, err = e.fetchColumns(ctx, name)
	if err != nil {
		return domain.Table{}, fmt.Errorf("reading columns of %q: %w", name, err)
	}

	if err := e.markPrimaryKeys(ctx, name, table.Columns); err != nil {
		return domain.Table{}, fmt.Errorf("reading primary key of %q: %w", name, err)
	}

	table.ForeignKeys, err = e.fetchForeignKeys(ctx, name)
	if err != nil {
		return domain.Table{}, fmt.Errorf("reading foreign keys of %q: %w", name, err)
	}

	table.Indexes, err = e.fetchIndexes(ctx, name)
	if err != nil {
		return domain.Table{}, fmt.Errorf("reading indexes of %q: %w", name, err)
	}

	if opts.IncludeSamples && opts.MaxSampleRows > 0 {
		table.SampleRows, err = e.fetchSampleRows(ctx, name, opts.MaxSampleRows)
		if err != nil {
			table.SampleRows = nil
			table.SampleDegraded = true
		}
	}

	return table, nil
}

func (e *Extractor) fetchColumns(ctx context.Context, tableName string) ([]domain.Column, error) {
	rows, err := e.pool.Query(ctx, queryColumns, e.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []domain.Column
	for rows.Next() {
		var col domain.Column
		if err := rows.Scan(&col.Name, &col.DataType, &col.Nullable); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

func (e *Extractor) markPrimaryKeys(ctx context.Context, tableName string, cols []domain.Column) error {
	rows, err := e.pool.Query(ctx, queryPrimaryKeys, e.schema, tableName)
	if err != nil {
		return err
	}
	defer rows.Close()

	pkCols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scanning pk column: %w", err)
		}
		pkCols[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range cols {
		if pkCols[cols[i].Name] {
			cols[i].IsPrimaryKey = true
		}
	}
	return nil
}

func (e *Extractor) fetchForeignKeys(ctx context.Context, tableName string) ([]domain.ForeignKey, error) {
	rows, err := e.pool.Query(ctx, queryForeignKeys, e.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fks []domain.ForeignKey
	for rows.Next() {
		var fk domain.ForeignKey
		if err := rows.Scan(&fk.Column, &fk.ReferencedTable, &fk.ReferencedColumn); err != nil {
			return nil, fmt.Errorf("scanning foreign key: %w", err)
		}
		fks = append(fks, fk)
	}
	return fks, rows.Err()
}

func (e *Extractor) fetchIndexes(ctx context.Context, tableName string) ([]domain.Index, error) {
	rows, err := e.pool.Query(ctx, queryIndexes, e.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var idxs []domain.Index
	for rows.Next() {
		var (
			idx      domain.Index
			indexdef string
		)
		if err := rows.Scan(&idx.Name, &indexdef, &idx.Unique); err != nil {
			return nil, fmt.Errorf("scanning index: %w", err)
		}
		cols, err := parseIndexColumns(indexdef)
		if err != nil {
			return nil, fmt.Errorf("index %q: %w", idx.Name, err)
		}
		idx.Columns = cols
		idxs = append(idxs, idx)
	}
	return idxs, rows.Err()
}

func (e *Extractor) fetchSampleRows(ctx context.Context, tableName string, limit int) ([]map[string]any, error) {
	fqn := fmt.Sprintf("%s.%s", quoteIdent(e.schema), quoteIdent(tableName))
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", fqn, limit)

	rows, err := e.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sampling rows: %w", err)
	}
	defer rows.Close()

	return rowsToMaps(rows)
}

// rowsToMaps converts pgx.Rows into a slice of maps keyed by column name.
func rowsToMaps(rows pgx.Rows) ([]map[string]any, error) {
	fields := rows.FieldDescriptions()
	var result []map[string]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("reading row values: %w", err)
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = vals[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return result, nil
}

// quoteIdent quotes a SQL identifier to prevent injection.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
