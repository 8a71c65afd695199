package domain

// Column is one column definition inside a Table.
type Column struct {
	Name         string `json:"name"`
	DataType     string `json:"data_type"`
	Nullable     bool   `json:"nullable"`
	IsPrimaryKey bool   `json:"is_primary_key"`
}

// Index is a declared index with its column sequence in index order.
// Expression elements are carried as their deparsed SQL text so ordering
// and prefix comparison stay well-defined.
type Index struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique"`
}

// ForeignKey is a declared foreign-key constraint on a single column.
type ForeignKey struct {
	Column           string `json:"column"`
	ReferencedTable  string `json:"referenced_table"`
	ReferencedColumn string `json:"referenced_column"`
}

// Table is one table in the schema model. SampleRows is best-effort: when
// a sample read fails the slice stays empty and SampleDegraded is set
// instead of failing the whole extraction.
type Table struct {
	Name           string           `json:"name"`
	Columns        []Column         `json:"columns"`
	Indexes        []Index          `json:"indexes,omitempty"`
	ForeignKeys    []ForeignKey     `json:"foreign_keys,omitempty"`
	SampleRows     []map[string]any `json:"sample_rows,omitempty"`
	SampleDegraded bool             `json:"sample_degraded,omitempty"`
}

// SchemaModel is the in-memory schema for one analysis pass. Tables keep
// catalog order; names are unique within the model by construction (the
// extractor reads one namespace and the catalog enforces uniqueness there).
type SchemaModel struct {
	Tables []Table `json:"tables"`
}

// Table returns the table with the given name, if present.
func (m *SchemaModel) Table(name string) (*Table, bool) {
	for i := range m.Tables {
		if m.Tables[i].Name == name {
			return &m.Tables[i], true
		}
	}
	return nil, false
}

// TableNames returns the set of table names, used by name-pattern inference.
func (m *SchemaModel) TableNames() map[string]bool {
	names := make(map[string]bool, len(m.Tables))
	for i := range m.Tables {
		names[m.Tables[i].Name] = true
	}
	return names
}

// Column returns the column with the given name, if present.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// PrimaryKeyColumns returns the columns flagged as primary-key members,
// in declaration order.
func (t *Table) PrimaryKeyColumns() []Column {
	var pks []Column
	for _, c := range t.Columns {
		if c.IsPrimaryKey {
			pks = append(pks, c)
		}
	}
	return pks
}

// HasIndexLeadingOn reports whether any index on the table has the given
// column as its leading column. A composite index serves equality lookups
// on its leading column, so it counts.
func (t *Table) HasIndexLeadingOn(column string) bool {
	for _, idx := range t.Indexes {
		if len(idx.Columns) > 0 && idx.Columns[0] == column {
			return true
		}
	}
	return false
}
