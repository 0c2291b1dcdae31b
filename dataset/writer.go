package dataset

import (
	"net/url"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lance-io/lance-bridge/common/log"
	"github.com/lance-io/lance-bridge/common/utils"
	"github.com/lance-io/lance-bridge/file/fragment"
	"github.com/lance-io/lance-bridge/io/format"
	"github.com/lance-io/lance-bridge/io/format/parquet"
	"github.com/lance-io/lance-bridge/io/fs"
	"github.com/lance-io/lance-bridge/storage/options"
)

// Writer persists a finalized set of batches as one dataset version.
type Writer interface {
	Write(batches []arrow.Record, schema *arrow.Schema, opts *options.WriteOptions) error
}

// LocalWriter lays a dataset out as parquet fragment files under
// <root>/data plus a committed manifest at the root. The root directory
// name carries the dataset suffix.
type LocalWriter struct {
	fs      fs.Fs
	root    string
	newFile fileWriterFactory
}

type fileWriterFactory func(schema *arrow.Schema, f fs.Fs, filePath string, rowsPerGroup int64) (format.Writer, error)

func newParquetFileWriter(schema *arrow.Schema, f fs.Fs, filePath string, rowsPerGroup int64) (format.Writer, error) {
	return parquet.NewFileWriter(schema, f, filePath, rowsPerGroup)
}

var _ Writer = (*LocalWriter)(nil)

func NewLocalWriter(uri string) (*LocalWriter, error) {
	fsResult := fs.BuildFileSystem(uri)
	if !fsResult.Ok() {
		return nil, errors.New(fsResult.Status().Msg())
	}
	parsedUri, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrap(err, "parse dataset uri")
	}
	root := utils.NormalizeDatasetPath(parsedUri.Path)

	f := fsResult.Value()
	if err := f.CreateDir(root); err != nil {
		return nil, errors.Wrap(err, "create dataset root")
	}
	if err := f.CreateDir(utils.GetDataDir(root)); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return &LocalWriter{fs: f, root: root, newFile: newParquetFileWriter}, nil
}

func (l *LocalWriter) Root() string {
	return l.root
}

func (l *LocalWriter) Write(batches []arrow.Record, schema *arrow.Schema, opts *options.WriteOptions) error {
	frag := fragment.NewFragment(1)
	var writer format.Writer
	var rows int64

	// an error return must not leave the current fragment file open
	defer func() {
		if writer != nil {
			if err := writer.Close(); err != nil {
				log.Warn("closing fragment file after failed write", zap.Error(err))
			}
		}
	}()

	closeWriter := func() error {
		if writer == nil {
			return nil
		}
		w := writer
		writer = nil
		if err := w.Close(); err != nil {
			return errors.Wrap(err, "close fragment file")
		}
		frag.AddRows(w.Count())
		rows += w.Count()
		return nil
	}

	for _, rec := range batches {
		if rec.NumRows() == 0 {
			continue
		}
		if writer == nil {
			filePath := utils.GetNewDataFilePath(l.root)
			w, err := l.newFile(schema, l.fs, filePath, opts.MaxRowsPerGroup)
			if err != nil {
				return errors.Wrap(err, "create fragment file")
			}
			writer = w
			frag.AddFile(filePath)
			log.Debug("opened fragment file", log.String("path", filePath))
		}

		// rebind the columns to the hinted schema; the batch schema carries
		// no encoding metadata and would not match the file schema
		bound := array.NewRecord(schema, rec.Columns(), rec.NumRows())
		err := writer.Write(bound)
		bound.Release()
		if err != nil {
			return errors.Wrap(err, "write fragment")
		}

		if writer.Count() >= opts.MaxRowsPerFile {
			if err := closeWriter(); err != nil {
				return err
			}
		}
	}
	if err := closeWriter(); err != nil {
		return err
	}

	manifest := NewManifest(schema, fragment.FragmentVector{*frag})
	if err := saveManifest(l.fs, l.root, manifest); err != nil {
		return errors.Wrap(err, "commit manifest")
	}
	log.Info("committed dataset",
		log.String("root", l.root),
		log.Int("files", len(frag.Files())),
		log.Int64("rows", rows))
	return nil
}
