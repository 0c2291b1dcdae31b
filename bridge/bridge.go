// Package bridge is the foreign-call surface of the dataset writer. Every
// operation takes an opaque handle and reports an integer status instead of
// a Go error, so a non-Go caller can drive the writer over a C ABI. Panics
// never cross the boundary; they degrade to an internal fault status.
package bridge

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lance-io/lance-bridge/cabi"
	lberrors "github.com/lance-io/lance-bridge/common/errors"
	"github.com/lance-io/lance-bridge/common/log"
	"github.com/lance-io/lance-bridge/common/status"
	"github.com/lance-io/lance-bridge/storage"
)

// Handle owns one writer on behalf of a foreign caller. A nil handle is
// tolerated by every operation and reported as a null-handle status.
type Handle struct {
	writer *storage.Writer
}

// Create opens a writer for the dataset uri and wraps it in a handle.
// Returns nil on failure; the cause is logged rather than surfaced, since
// the foreign caller only observes the missing handle.
func Create(uri string, schemaHint *cabi.ArrowSchema, opts ...storage.Option) *Handle {
	if schemaHint != nil {
		opts = append(opts, storage.WithSchemaHint(schemaHint))
	}
	w, err := storage.Open(uri, opts...)
	if err != nil {
		log.Error("create writer handle failed", log.String("uri", uri), zap.Error(err))
		return nil
	}
	return &Handle{writer: w}
}

// WriteBatch imports the batch behind the descriptors and accumulates it.
func WriteBatch(h *Handle, arrDesc *cabi.ArrowArray, scDesc *cabi.ArrowSchema) (st status.Status) {
	defer recoverStatus(&st, "write batch", status.InternalFault)
	if h == nil || h.writer == nil {
		return status.NullHandle()
	}
	if err := h.writer.WriteBatch(arrDesc, scDesc); err != nil {
		switch {
		case errors.Is(err, lberrors.ErrWriterClosed):
			return status.WriterClosed()
		case errors.Is(err, lberrors.ErrNilDescriptor):
			return status.InvalidArgument(err.Error())
		default:
			return status.ImportError(err.Error())
		}
	}
	return status.OK()
}

// Close finalizes the dataset. The handle stays valid but every further
// operation on it reports the writer as closed.
// A panic during close reports the invalid-argument code; only the write
// path carries a dedicated fault code.
func Close(h *Handle) (st status.Status) {
	defer recoverStatus(&st, "close", status.InvalidArgument)
	if h == nil || h.writer == nil {
		return status.NullHandle()
	}
	if err := h.writer.Close(); err != nil {
		if errors.Is(err, lberrors.ErrWriterClosed) {
			return status.WriterClosed()
		}
		return status.ExternalWriteError(err.Error())
	}
	return status.OK()
}

// Destroy drops the handle and whatever the writer still holds. Safe on nil
// and safe to call more than once.
func Destroy(h *Handle) {
	if h == nil || h.writer == nil {
		return
	}
	h.writer.Destroy()
	h.writer = nil
}

func recoverStatus(st *status.Status, op string, fault func(string) status.Status) {
	if r := recover(); r != nil {
		log.Error("panic crossing bridge boundary", log.String("op", op), log.Any("panic", r))
		*st = fault(fmt.Sprintf("%s: %v", op, r))
	}
}
