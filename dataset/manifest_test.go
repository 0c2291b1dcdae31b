package dataset

import (
	"testing"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lance-io/lance-bridge/common/constant"
	"github.com/lance-io/lance-bridge/common/utils"
	"github.com/lance-io/lance-bridge/file/fragment"
	"github.com/lance-io/lance-bridge/io/fs"
)

func TestManifestRoundTrip(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{
			Name: "id",
			Type: arrow.PrimitiveTypes.Int64,
			Metadata: arrow.NewMetadata(
				[]string{constant.EncodingMetadataKey}, []string{"fixed-width"}),
		},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)

	frag := fragment.NewFragment(1)
	frag.AddFile("data/one.parquet")
	frag.AddFile("data/two.parquet")
	frag.AddRows(128)

	m := NewManifest(schema, fragment.FragmentVector{*frag})
	require.Equal(t, int64(1), m.Version)
	require.Len(t, m.Fields, 2)
	assert.Equal(t, "fixed-width", m.Fields[0].Encoding)
	assert.Equal(t, "", m.Fields[1].Encoding)
	assert.True(t, m.Fields[1].Nullable)
	require.Len(t, m.Fragments, 1)
	assert.Equal(t, int64(128), m.TotalRows)

	memFs := fs.NewMemoryFs()
	root := "ds.lance"
	require.NoError(t, saveManifest(memFs, root, m))

	// the temp file was renamed away, only the committed manifest remains
	exist, err := memFs.Exist(utils.GetManifestTmpFilePath(root))
	require.NoError(t, err)
	assert.False(t, exist)
	exist, err = memFs.Exist(utils.GetManifestFilePath(root))
	require.NoError(t, err)
	assert.True(t, exist)

	parsed, err := ParseManifestFile(memFs, root)
	require.NoError(t, err)
	assert.Equal(t, m.Version, parsed.Version)
	assert.Equal(t, m.Fields, parsed.Fields)
	assert.Equal(t, m.Fragments, parsed.Fragments)
	assert.Equal(t, m.TotalRows, parsed.TotalRows)
}

func TestParseManifestMissing(t *testing.T) {
	_, err := ParseManifestFile(fs.NewMemoryFs(), "nope.lance")
	assert.Error(t, err)
}
