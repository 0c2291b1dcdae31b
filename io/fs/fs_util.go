package fs

import (
	"net/url"

	"github.com/lance-io/lance-bridge/common/result"
	"github.com/lance-io/lance-bridge/common/status"
	"github.com/lance-io/lance-bridge/storage/options"
)

// BuildFileSystem selects a filesystem backend from the uri scheme. A bare
// path is treated as local.
func BuildFileSystem(uri string) *result.Result[Fs] {
	parsedUri, err := url.Parse(uri)
	if err != nil {
		return result.NewResultFromStatus[Fs](status.InvalidArgument("invalid uri: " + uri))
	}
	switch parsedUri.Scheme {
	case "", "file":
		return result.NewResult[Fs](NewFsFactory().Create(options.LocalFS), status.OK())
	case "memory":
		return result.NewResult[Fs](NewFsFactory().Create(options.InMemory), status.OK())
	case "s3":
		minioFs, err := NewMinioFs(parsedUri)
		if err != nil {
			return result.NewResultFromStatus[Fs](status.InvalidArgument(err.Error()))
		}
		return result.NewResult[Fs](minioFs, status.OK())
	default:
		return result.NewResultFromStatus[Fs](status.InvalidArgument("unknown fs scheme: " + parsedUri.Scheme))
	}
}
