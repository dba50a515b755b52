package df

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	_ "github.com/jackc/pgx/stdlib"
)

// All code interacting with a database is here

const (
	ch = "clickhouse"
	pg = "postgres"
)

type Dialect struct {
	db      *sql.DB
	dialect string
}

func NewDialect(dialect string, db *sql.DB) (*Dialect, error) {
	dialect = strings.ToLower(dialect)
	if dialect != ch && dialect != pg {
		return nil, fmt.Errorf("unsupported database %s", dialect)
	}

	return &Dialect{db: db, dialect: dialect}, nil
}

// OpenDialect connects to the database at dsn and checks the connection.
func OpenDialect(dialect, dsn string) (*Dialect, error) {
	var (
		db *sql.DB
		e  error
	)

	switch strings.ToLower(dialect) {
	case ch:
		var opts *clickhouse.Options
		if opts, e = clickhouse.ParseDSN(dsn); e != nil {
			return nil, e
		}

		opts.Compression = &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
			Level:  0,
		}
		db = clickhouse.OpenDB(opts)
	case pg:
		if db, e = sql.Open("pgx", dsn); e != nil {
			return nil, e
		}
	default:
		return nil, fmt.Errorf("unsupported database %s", dialect)
	}

	if e = db.Ping(); e != nil {
		_ = db.Close()
		return nil, e
	}

	return NewDialect(dialect, db)
}

// ***************** Methods *****************

func (d *Dialect) Close() error {
	return d.db.Close()
}

func (d *Dialect) DialectName() string {
	return d.dialect
}

// Select is the query that reads all of tableName.
func (d *Dialect) Select(tableName string) string {
	return fmt.Sprintf("SELECT * FROM %s", tableName)
}

// Load runs qry and returns the result as a DF. NULLs become missing values.
func (d *Dialect) Load(qry string) (*DF, error) {
	var (
		rows *sql.Rows
		e    error
	)
	if rows, e = d.db.Query(qry); e != nil {
		return nil, e
	}
	defer func() { _ = rows.Close() }()

	var colTypes []*sql.ColumnType
	if colTypes, e = rows.ColumnTypes(); e != nil {
		return nil, e
	}

	dts := make([]DataTypes, len(colTypes))
	data := make([][]any, len(colTypes))
	row2Read := make([]any, len(colTypes))
	for ind, ct := range colTypes {
		dts[ind] = d.dataType(ct.DatabaseTypeName())
		row2Read[ind] = new(any)
	}

	for rows.Next() {
		if ex := rows.Scan(row2Read...); ex != nil {
			return nil, ex
		}

		for ind := 0; ind < len(row2Read); ind++ {
			data[ind] = append(data[ind], deref(*row2Read[ind].(*any)))
		}
	}

	if e = rows.Err(); e != nil {
		return nil, e
	}

	var cols []*Col
	for ind, ct := range colTypes {
		var col *Col
		if col, e = NewCol(data[ind], dts[ind], ColName(ct.Name())); e != nil {
			return nil, fmt.Errorf("column %s: %w", ct.Name(), e)
		}

		cols = append(cols, col)
	}

	return NewDF(cols...)
}

// dataType maps a database column type to DataTypes.
func (d *Dialect) dataType(dbType string) DataTypes {
	t := strings.ToUpper(dbType)
	for stripped := true; stripped; {
		stripped = false
		for _, wrapper := range []string{"NULLABLE(", "LOWCARDINALITY("} {
			if strings.HasPrefix(t, wrapper) {
				t, stripped = strings.TrimSuffix(strings.TrimPrefix(t, wrapper), ")"), true
			}
		}
	}

	switch {
	case strings.HasPrefix(t, "INT"), strings.HasPrefix(t, "UINT"), strings.HasPrefix(t, "BIGINT"),
		strings.HasPrefix(t, "SMALLINT"), strings.HasSuffix(t, "SERIAL"):
		return DTint
	case strings.HasPrefix(t, "FLOAT"), strings.HasPrefix(t, "DOUBLE"), strings.HasPrefix(t, "NUMERIC"),
		strings.HasPrefix(t, "DECIMAL"), t == "REAL":
		return DTfloat
	case strings.HasPrefix(t, "DATE"), strings.HasPrefix(t, "TIMESTAMP"):
		return DTdate
	default:
		return DTstring
	}
}

// deref unwraps pointers and byte slices drivers hand back for nullable and text columns.
func deref(x any) any {
	if b, ok := x.([]byte); ok {
		return string(b)
	}

	xv := reflect.ValueOf(x)
	for xv.IsValid() && xv.Kind() == reflect.Pointer {
		if xv.IsNil() {
			return nil
		}

		xv = xv.Elem()
	}

	if !xv.IsValid() {
		return nil
	}

	return xv.Interface()
}
