package sqlbuilder

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/orris-inc/fitment/internal/shared/config"
)

// Dialect captures the vendor differences the read queries depend on.
type Dialect interface {
	// Name returns the driver name, e.g. "mysql"
	Name() string

	Placeholder() sq.PlaceholderFormat

	// QuoteIdent quotes a table or view name taken from the catalog
	QuoteIdent(name string) string

	// GroupConcatDistinct aggregates distinct values of column into a comma separated list
	GroupConcatDistinct(column string) string

	// Catalog returns a query selecting table_name for objects of the given kind ("table" or "view")
	Catalog(kind string) sq.SelectBuilder
}

const (
	DriverMySQL  = config.DriverMySQL
	DriverSQLite = config.DriverSQLite
)

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch config.NormalizeDriver(driver) {
	case DriverMySQL:
		return MySQL{}, nil
	case DriverSQLite:
		return SQLite{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// MySQL is the production dialect.
type MySQL struct{}

func (MySQL) Name() string { return DriverMySQL }

func (MySQL) Placeholder() sq.PlaceholderFormat { return sq.Question }

func (MySQL) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (MySQL) GroupConcatDistinct(column string) string {
	return fmt.Sprintf("GROUP_CONCAT(DISTINCT %s ORDER BY %s SEPARATOR ', ')", column, column)
}

func (d MySQL) Catalog(kind string) sq.SelectBuilder {
	tableType := "BASE TABLE"
	if kind == "view" {
		tableType = "VIEW"
	}
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder()).
		Select("table_name AS table_name").
		From("information_schema.tables").
		Where("table_schema = DATABASE()").
		Where(sq.Eq{"table_type": tableType}).
		OrderBy("table_name")
}

// SQLite backs local runs and repository tests.
type SQLite struct{}

func (SQLite) Name() string { return DriverSQLite }

func (SQLite) Placeholder() sq.PlaceholderFormat { return sq.Question }

func (SQLite) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// SQLite cannot order or separate a DISTINCT group_concat; the default "," separator is used.
func (SQLite) GroupConcatDistinct(column string) string {
	return fmt.Sprintf("group_concat(DISTINCT %s)", column)
}

func (d SQLite) Catalog(kind string) sq.SelectBuilder {
	objType := "table"
	if kind == "view" {
		objType = "view"
	}
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder()).
		Select("name AS table_name").
		From("sqlite_master").
		Where(sq.Eq{"type": objType}).
		Where(sq.NotLike{"name": "sqlite_%"}).
		OrderBy("name")
}
