package parquet

import (
	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/parquet"
	"github.com/apache/arrow/go/v12/parquet/pqarrow"

	"github.com/lance-io/lance-bridge/io/format"
	"github.com/lance-io/lance-bridge/io/fs"
)

var _ format.Writer = (*FileWriter)(nil)

type FileWriter struct {
	writer *pqarrow.FileWriter
	count  int64
}

func (f *FileWriter) Write(record arrow.Record) error {
	if err := f.writer.Write(record); err != nil {
		return err
	}
	f.count += record.NumRows()
	return nil
}

func (f *FileWriter) Count() int64 {
	return f.count
}

func (f *FileWriter) Close() error {
	return f.writer.Close()
}

func NewFileWriter(schema *arrow.Schema, fs fs.Fs, filePath string, rowsPerGroup int64) (*FileWriter, error) {
	file, err := fs.OpenFile(filePath)
	if err != nil {
		return nil, err
	}

	props := parquet.NewWriterProperties(parquet.WithMaxRowGroupLength(rowsPerGroup))
	w, err := pqarrow.NewFileWriter(schema, file, props, pqarrow.DefaultWriterProps())
	if err != nil {
		return nil, err
	}

	return &FileWriter{writer: w}, nil
}
