package utils

import (
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/lance-io/lance-bridge/common/constant"
)

// NormalizeDatasetPath makes sure a dataset root carries the .lance suffix.
func NormalizeDatasetPath(p string) string {
	p = strings.TrimSuffix(p, "/")
	if strings.HasSuffix(p, constant.LanceDatasetSuffix) {
		return p
	}
	return p + constant.LanceDatasetSuffix
}

func GetDataDir(root string) string {
	return path.Join(root, constant.DataDir)
}

func GetNewDataFilePath(root string) string {
	fileId := uuid.New()
	return path.Join(root, constant.DataDir, fileId.String()+constant.ParquetDataFileSuffix)
}

func GetManifestFilePath(root string) string {
	return path.Join(root, constant.ManifestFileName)
}

func GetManifestTmpFilePath(root string) string {
	return path.Join(root, constant.ManifestTempFileName)
}
