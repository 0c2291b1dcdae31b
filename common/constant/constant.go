package constant

const (
	LanceDatasetSuffix    = ".lance"
	DataDir               = "data"
	ManifestFileName      = "_latest.manifest"
	ManifestTempFileName  = "_latest.manifest.tmp"
	ParquetDataFileSuffix = ".parquet"
	EndpointOverride      = "endpoint_override"
	DefaultRowsPerGroup   = 1024
	TunedRowsPerGroup     = 8192
	DefaultMaxRowsPerFile = 1 << 20
	EncodingMetadataKey   = "encoding"
	FastPathMetadataKey   = "fast-path"
)
