package dataset

import (
	"encoding/json"

	"github.com/apache/arrow/go/v12/arrow"

	"github.com/lance-io/lance-bridge/common/constant"
	"github.com/lance-io/lance-bridge/common/utils"
	"github.com/lance-io/lance-bridge/file/fragment"
	"github.com/lance-io/lance-bridge/io/fs"
)

type ManifestField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
	Encoding string `json:"encoding,omitempty"`
}

type ManifestFragment struct {
	Id    int64    `json:"id"`
	Files []string `json:"files"`
	Rows  int64    `json:"rows"`
}

type Manifest struct {
	Version   int64              `json:"version"`
	Fields    []ManifestField    `json:"fields"`
	Fragments []ManifestFragment `json:"fragments"`
	TotalRows int64              `json:"total_rows"`
}

func NewManifest(schema *arrow.Schema, fragments fragment.FragmentVector) *Manifest {
	m := &Manifest{Version: 1}
	for _, field := range schema.Fields() {
		mf := ManifestField{
			Name:     field.Name,
			Type:     field.Type.String(),
			Nullable: field.Nullable,
		}
		if enc, ok := field.Metadata.GetValue(constant.EncodingMetadataKey); ok {
			mf.Encoding = enc
		}
		m.Fields = append(m.Fields, mf)
	}
	for _, frag := range fragments {
		m.Fragments = append(m.Fragments, ManifestFragment{
			Id:    frag.FragmentId(),
			Files: frag.Files(),
			Rows:  frag.Rows(),
		})
		m.TotalRows += frag.Rows()
	}
	return m
}

// saveManifest writes the manifest to a temp file first and renames it into
// place so a crashed write never leaves a truncated manifest behind.
func saveManifest(f fs.Fs, root string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := utils.GetManifestTmpFilePath(root)
	manifestPath := utils.GetManifestFilePath(root)

	output, err := f.OpenFile(tmpPath)
	if err != nil {
		return err
	}
	if _, err = output.Write(data); err != nil {
		return err
	}
	if err = output.Close(); err != nil {
		return err
	}
	return f.Rename(tmpPath, manifestPath)
}

// ParseManifestFile reads back the committed manifest of a dataset root.
func ParseManifestFile(f fs.Fs, root string) (*Manifest, error) {
	data, err := f.ReadFile(utils.GetManifestFilePath(root))
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}
