// Package query builds parameterized SQL for the guide listing and lookup
// paths, mapping JSON-facing field names onto qualified columns.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap binds view-level field names to alias-qualified columns for
// one table. It is the single source of truth for what a query selects.
type ProjectionMap struct {
	schema     string
	table      string
	alias      string
	columns    map[string]string
	columnList []string
}

func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:     schema,
		table:      table,
		alias:      alias,
		columns:    make(map[string]string),
		columnList: make([]string, 0),
	}
}

// Project maps a database column to a view field name. Selection order
// follows Project call order.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.alias, column)
	p.columns[viewName] = qualified
	p.columnList = append(p.columnList, qualified)
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// From returns the aliased table reference (schema.table alias).
func (p *ProjectionMap) From() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a view field to its qualified column, passing unmapped
// names through unchanged.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Columns returns the projected columns joined for a SELECT list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columnList, ", ")
}

// ColumnList returns the projected columns in order.
func (p *ProjectionMap) ColumnList() []string {
	return p.columnList
}
