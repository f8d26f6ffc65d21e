package static

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogosAreEmbedded(t *testing.T) {
	sub, err := FS()
	require.NoError(t, err)

	for _, dark := range []bool{true, false} {
		name := strings.TrimPrefix(LogoPath(dark), "/static/")
		data, err := fs.ReadFile(sub, name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "<svg")
	}
}

func TestStylesheetIsEmbedded(t *testing.T) {
	sub, err := FS()
	require.NoError(t, err)

	data, err := fs.ReadFile(sub, "app.css")
	require.NoError(t, err)
	assert.Contains(t, string(data), ".sr-only")
	assert.Contains(t, string(data), ".dark\\:text-white:is(.dark *)")
}

func TestLogoPath(t *testing.T) {
	assert.Equal(t, "/static/logo-dark.svg", LogoPath(true))
	assert.Equal(t, "/static/logo-light.svg", LogoPath(false))
}
