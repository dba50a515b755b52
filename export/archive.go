// Package export writes the cleaned table, archives it and publishes the archive to S3.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"

	d "github.com/invertedv/zclean/df"
)

// FieldTypes are the read overrides under which a file written by WriteCSV loads back with the types it was
// written with. Without them transactiondate loads as strings and zipcode as ints.
var FieldTypes = map[string]d.DataTypes{
	"transactiondate": d.DTdate,
	"zipcode":         d.DTstring,
}

// WriteCSV writes t to fileName with a leading row-number column. Read it back with FieldTypes.
func WriteCSV(t *d.DF, fileName string) error {
	var (
		f *d.Files
		e error
	)
	if f, e = d.NewFiles(d.FileIndex(true)); e != nil {
		return e
	}

	return f.Save(fileName, t)
}

// Archive writes a zip file holding src, stored under src's base name.
func Archive(src, dst string) (err error) {
	var in *os.File
	if in, err = os.Open(src); err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	var out *os.File
	if out, err = os.Create(dst); err != nil {
		return err
	}
	defer func() {
		if e := out.Close(); err == nil {
			err = e
		}
	}()

	zw := zip.NewWriter(out)

	var w io.Writer
	if w, err = zw.CreateHeader(&zip.FileHeader{Name: filepath.Base(src), Method: zip.Deflate}); err != nil {
		return err
	}

	if _, err = io.Copy(w, in); err != nil {
		return fmt.Errorf("archiving %s: %w", src, err)
	}

	return zw.Close()
}

// ReadArchive loads the table stored as entry name in the zip file archive.
func ReadArchive(archive, name string, f *d.Files) (*d.DF, error) {
	zr, e := zip.OpenReader(archive)
	if e != nil {
		return nil, e
	}
	defer func() { _ = zr.Close() }()

	for _, zf := range zr.File {
		if zf.Name != name {
			continue
		}

		rc, ex := zf.Open()
		if ex != nil {
			return nil, ex
		}
		defer func() { _ = rc.Close() }()

		return f.Read(rc)
	}

	return nil, fmt.Errorf("%s not in %s", name, archive)
}
