package storage

import (
	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/memory"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lance-io/lance-bridge/cabi"
	lberrors "github.com/lance-io/lance-bridge/common/errors"
	"github.com/lance-io/lance-bridge/common/log"
	"github.com/lance-io/lance-bridge/dataset"
	"github.com/lance-io/lance-bridge/storage/options"
)

// Writer accumulates imported record batches for one dataset and flushes
// them through the external dataset writer on Close.
//
// A Writer is not safe for concurrent use; the caller serializes all
// operations against one instance.
type Writer struct {
	uri     string
	mem     memory.Allocator
	dataset dataset.Writer

	schemaHint *cabi.ArrowSchema

	schema     *arrow.Schema
	batches    []arrow.Record
	batchCount int64
	rowCount   int64
	closed     bool
}

type Option func(*Writer)

func WithAllocator(mem memory.Allocator) Option {
	return func(w *Writer) { w.mem = mem }
}

// WithDatasetWriter overrides the dataset writer the batches are finalized
// into. The default writes a parquet-fragment dataset under the uri.
func WithDatasetWriter(d dataset.Writer) Option {
	return func(w *Writer) { w.dataset = d }
}

// WithSchemaHint pre-captures the schema from a descriptor at open time
// instead of from the first batch.
func WithSchemaHint(desc *cabi.ArrowSchema) Option {
	return func(w *Writer) { w.schemaHint = desc }
}

// Open creates a writer in the open state with zero counters and no
// captured schema (unless a hint is supplied).
func Open(uri string, opts ...Option) (*Writer, error) {
	w := &Writer{
		uri: uri,
		mem: memory.DefaultAllocator,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.schemaHint != nil {
		schema, err := cabi.ImportSchema(cabi.NewSchemaView(w.schemaHint))
		if err != nil {
			return nil, errors.Wrap(err, "schema hint")
		}
		w.schema = schema
		w.schemaHint = nil
	}
	if w.dataset == nil {
		d, err := dataset.NewLocalWriter(uri)
		if err != nil {
			return nil, err
		}
		w.dataset = d
	}
	log.Debug("opened dataset writer", log.String("uri", uri))
	return w, nil
}

// WriteBatch imports one batch from its borrowed descriptors and appends it.
// On failure nothing is mutated and the caller may retry with a corrected
// batch.
func (w *Writer) WriteBatch(arrDesc *cabi.ArrowArray, scDesc *cabi.ArrowSchema) error {
	if w.closed {
		return lberrors.ErrWriterClosed
	}
	if arrDesc == nil || scDesc == nil {
		return lberrors.ErrNilDescriptor
	}

	rec, err := cabi.ImportRecord(scDesc, arrDesc, w.mem)
	if err != nil {
		return err
	}

	if w.schema == nil {
		w.schema = rec.Schema()
	} else if !w.schema.Equal(rec.Schema()) {
		rec.Release()
		return lberrors.ErrSchemaNotMatch
	}

	w.batches = append(w.batches, rec)
	w.batchCount++
	w.rowCount += rec.NumRows()
	log.Debug("accumulated batch",
		log.Int64("batch", w.batchCount), log.Int64("rows", rec.NumRows()))
	return nil
}

// Close finalizes the dataset. With zero accumulated batches it succeeds
// without invoking the dataset writer at all. Otherwise it plans per-column
// encodings once, builds the hinted schema, and hands every accumulated
// batch to the dataset writer with tuned write parameters. The writer
// transitions to closed regardless of the outcome; a failed external write
// is reported but not retryable.
func (w *Writer) Close() error {
	if w.closed {
		return lberrors.ErrWriterClosed
	}
	w.closed = true

	if len(w.batches) == 0 {
		log.Info("closed dataset writer with no batches", log.String("uri", w.uri))
		return nil
	}

	plan := PlanEncoding(w.schema)
	hinted := HintedSchema(w.schema, plan)
	opts := options.TunedWriteOptions()

	batches := w.batches
	w.batches = nil

	// the external write runs on its own goroutine; Close blocks until it
	// finishes, with no partial results and no cancellation. A panic there
	// would escape every caller-side recover, so it is contained here.
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- errors.Errorf("dataset writer panic: %v", r)
			}
		}()
		done <- w.dataset.Write(batches, hinted, opts)
	}()
	err := <-done

	for _, rec := range batches {
		rec.Release()
	}
	if err != nil {
		log.Error("external dataset write failed", log.String("uri", w.uri), zap.Error(err))
		return errors.Wrap(err, "external dataset write")
	}
	log.Info("dataset finalized",
		log.String("uri", w.uri),
		log.Int64("rows", w.rowCount),
		log.Int64("batches", w.batchCount))
	return nil
}

// Destroy releases everything the writer still owns. The writer must not be
// used afterwards.
func (w *Writer) Destroy() {
	for _, rec := range w.batches {
		rec.Release()
	}
	w.batches = nil
	w.schema = nil
}

func (w *Writer) Closed() bool {
	return w.closed
}

func (w *Writer) BatchCount() int64 {
	return w.batchCount
}

func (w *Writer) RowCount() int64 {
	return w.rowCount
}

func (w *Writer) Schema() *arrow.Schema {
	return w.schema
}
