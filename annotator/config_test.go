package annotator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewtec/labelbridge/domain"
)

func writeClassFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "classes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadClasses(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		path := writeClassFile(t, `
classes:
  - name: claim_id
    color: [255, 0, 0]
    geometry: bbox
  - name: signature
    color: [0, 128, 255]
    geometry: polygon
`)
		classes, err := LoadClasses(path)
		require.NoError(t, err)
		require.Len(t, classes, 2)
		assert.Equal(t, "claim_id", classes[0].Name)
		assert.Equal(t, domain.RGB{255, 0, 0}, classes[0].Color)
		assert.Equal(t, domain.GeometryBBox, classes[0].GeometryType)
		assert.Equal(t, domain.GeometryPolygon, classes[1].GeometryType)
	})

	t.Run("geometry defaults to bbox", func(t *testing.T) {
		path := writeClassFile(t, `
classes:
  - name: stamp
`)
		classes, err := LoadClasses(path)
		require.NoError(t, err)
		assert.Equal(t, domain.GeometryBBox, classes[0].GeometryType)
	})

	t.Run("unknown geometry fails", func(t *testing.T) {
		path := writeClassFile(t, `
classes:
  - name: stamp
    geometry: cuboid
`)
		_, err := LoadClasses(path)
		assert.True(t, domain.IsValidation(err), "want ValidationError, got %v", err)
	})

	t.Run("unnamed class fails", func(t *testing.T) {
		path := writeClassFile(t, `
classes:
  - geometry: bbox
`)
		_, err := LoadClasses(path)
		assert.True(t, domain.IsValidation(err), "want ValidationError, got %v", err)
	})

	t.Run("empty file fails", func(t *testing.T) {
		path := writeClassFile(t, "classes: []\n")
		_, err := LoadClasses(path)
		assert.True(t, domain.IsValidation(err), "want ValidationError, got %v", err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadClasses(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
