package options

import (
	"github.com/lance-io/lance-bridge/common/constant"
)

type FsType int8

const (
	InMemory FsType = iota
	LocalFS
	S3
)

// WriteOptions tunes the dataset writer. MaxRowsPerGroup bounds parquet row
// group size, MaxRowsPerFile bounds how many rows land in one fragment file.
type WriteOptions struct {
	MaxRowsPerGroup int64
	MaxRowsPerFile  int64
}

func NewWriteOptions() *WriteOptions {
	return &WriteOptions{
		MaxRowsPerGroup: constant.DefaultRowsPerGroup,
		MaxRowsPerFile:  constant.DefaultMaxRowsPerFile,
	}
}

// TunedWriteOptions is what the bridge hands the dataset writer on finalize:
// a larger row group amortizes per-batch encoding overhead when many small
// accumulated batches are flushed at once.
func TunedWriteOptions() *WriteOptions {
	return &WriteOptions{
		MaxRowsPerGroup: constant.TunedRowsPerGroup,
		MaxRowsPerFile:  constant.DefaultMaxRowsPerFile,
	}
}
