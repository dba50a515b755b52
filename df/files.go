package df

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// All code interacting with files is here

const (
	Sep        = ','
	DateFormat = "2006-01-02"
)

// Files reads and writes DFs as delimited text files with a header row.
type Files struct {
	Sep        rune
	DateFormat string

	// FieldTypes overrides the type inferred for the named fields.
	FieldTypes map[string]DataTypes

	// Index writes a leading row-number column with a blank header.
	Index bool

	// Strict requires every row to have as many fields as the header.
	Strict bool

	file     *os.File
	fileName string
}

type FileOpt func(f *Files) error

func NewFiles(opts ...FileOpt) (*Files, error) {
	f := &Files{
		Sep:        Sep,
		DateFormat: DateFormat,
		Strict:     true,
	}

	for _, opt := range opts {
		if e := opt(f); e != nil {
			return nil, e
		}
	}

	return f, nil
}

// *********** Setters ***********

func FileSep(sep rune) FileOpt {
	return func(f *Files) error {
		if sep == '"' || sep == '\n' || sep == '\r' {
			return fmt.Errorf("invalid separator %q", sep)
		}

		f.Sep = sep
		return nil
	}
}

func FileFieldTypes(types map[string]DataTypes) FileOpt {
	return func(f *Files) error {
		for nm, dt := range types {
			if dt == DTunknown || dt == DTany {
				return fmt.Errorf("field %s: unsupported type %s", nm, dt)
			}
		}

		f.FieldTypes = types
		return nil
	}
}

func FileIndex(index bool) FileOpt {
	return func(f *Files) error {
		f.Index = index
		return nil
	}
}

func FileStrict(strict bool) FileOpt {
	return func(f *Files) error {
		f.Strict = strict
		return nil
	}
}

// *********** Methods ***********

func (f *Files) Open(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Open(fileName)

	return e
}

func (f *Files) Create(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Create(fileName)

	return e
}

func (f *Files) FileName() string {
	return f.fileName
}

func (f *Files) Close() error {
	if f.file != nil {
		e := f.file.Close()
		f.file = nil
		return e
	}

	return fmt.Errorf("no open files")
}

// Load reads fileName into a DF. Empty fields are missing values. Each column's type is int if every
// present value parses as an int, else float if every present value parses as a float, else string.
// A column with no present values is float.
func (f *Files) Load(fileName string) (*DF, error) {
	if e := f.Open(fileName); e != nil {
		return nil, e
	}
	defer func() { _ = f.Close() }()

	var (
		df *DF
		e  error
	)
	if df, e = f.Read(f.file); e != nil {
		return nil, fmt.Errorf("%s: %w", fileName, e)
	}

	return df, nil
}

// Read reads a delimited table from rdr. See Load.
func (f *Files) Read(rdr io.Reader) (*DF, error) {
	r := csv.NewReader(rdr)
	r.Comma = f.Sep
	r.ReuseRecord = true
	if !f.Strict {
		r.FieldsPerRecord = -1
	}

	var (
		header []string
		e      error
	)
	if header, e = r.Read(); e != nil {
		return nil, fmt.Errorf("reading header: %w", e)
	}

	names := make([]string, len(header))
	for ind, nm := range header {
		names[ind] = nm
		if nm == "" {
			names[ind] = fmt.Sprintf("unnamed%d", ind)
		}
	}

	fields := make([][]string, len(names))
	for {
		var rec []string
		if rec, e = r.Read(); e == io.EOF {
			break
		}

		if e != nil {
			return nil, e
		}

		for ind := 0; ind < len(names); ind++ {
			val := ""
			if ind < len(rec) {
				val = rec[ind]
			}

			fields[ind] = append(fields[ind], val)
		}
	}

	var cols []*Col
	for ind, nm := range names {
		dt, ok := f.FieldTypes[nm]
		if !ok {
			dt = inferType(fields[ind])
		}

		var col *Col
		if col, e = f.parseField(nm, fields[ind], dt); e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	return NewDF(cols...)
}

func inferType(vals []string) DataTypes {
	isInt, isFloat, present := true, true, false
	for _, val := range vals {
		if val == "" {
			continue
		}

		present = true
		if isInt {
			if _, e := strconv.ParseInt(val, 10, 64); e != nil {
				isInt = false
			}
		}

		if !isInt {
			if _, e := strconv.ParseFloat(val, 64); e != nil {
				isFloat = false
				break
			}
		}
	}

	switch {
	case !present:
		return DTfloat
	case isInt:
		return DTint
	case isFloat:
		return DTfloat
	default:
		return DTstring
	}
}

func (f *Files) parseField(name string, vals []string, dt DataTypes) (*Col, error) {
	v := MakeVector(dt, len(vals))
	for ind, val := range vals {
		if val == "" {
			v.SetNull(ind)
			continue
		}

		switch dt {
		case DTint:
			x, e := strconv.ParseInt(val, 10, 64)
			if e != nil {
				return nil, fmt.Errorf("field %s row %d: %w", name, ind+1, e)
			}

			v.SetInt(int(x), ind)
		case DTfloat:
			x, e := strconv.ParseFloat(val, 64)
			if e != nil {
				return nil, fmt.Errorf("field %s row %d: %w", name, ind+1, e)
			}

			v.SetFloat(x, ind)
		case DTdate:
			x, e := time.Parse(f.DateFormat, val)
			if e != nil {
				return nil, fmt.Errorf("field %s row %d: %w", name, ind+1, e)
			}

			v.SetDate(x, ind)
		default:
			v.SetString(val, ind)
		}
	}

	return NewCol(v, dt, ColName(name))
}

// Save writes df to fileName, header first.
func (f *Files) Save(fileName string, df *DF) error {
	if e := f.Create(fileName); e != nil {
		return e
	}

	if e := f.Write(f.file, df); e != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", fileName, e)
	}

	return f.Close()
}

// Write writes df to wrt, header first.
func (f *Files) Write(wrt io.Writer, df *DF) error {
	w := csv.NewWriter(wrt)
	w.Comma = f.Sep

	if e := w.Write(f.header(df)); e != nil {
		return e
	}

	for row := 0; row < df.RowCount(); row++ {
		if e := w.Write(f.line(row, df.Row(row))); e != nil {
			return e
		}
	}

	w.Flush()

	return w.Error()
}

func (f *Files) header(df *DF) []string {
	names := df.ColumnNames()
	if f.Index {
		names = append([]string{""}, names...)
	}

	return names
}

func (f *Files) line(row int, v []any) []string {
	var line []string
	if f.Index {
		line = append(line, strconv.Itoa(row))
	}

	for ind := 0; ind < len(v); ind++ {
		var lx string
		switch d := v[ind].(type) {
		case nil:
			lx = ""
		case float64:
			lx = formatFloat(d)
		case int:
			lx = strconv.Itoa(d)
		case time.Time:
			lx = d.Format(f.DateFormat)
		case string:
			lx = d
		default:
			lx = "#err#"
		}

		line = append(line, lx)
	}

	return line
}
