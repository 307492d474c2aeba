package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLoaded(t *testing.T) {
	require.NotEmpty(t, registry, "embedded styles.yaml must parse")

	for _, name := range []string{"Header", "Success", "Error", "Warning", "Muted", "Emphasis"} {
		_, ok := registry[name]
		assert.True(t, ok, "style %q missing from registry", name)
	}
}

func TestRenderDegradesWithoutTerminal(t *testing.T) {
	// test output is never a tty, so rendering passes text through
	assert.Equal(t, "hello", Render("Header", "hello"))
	assert.Equal(t, "hello", Render("NoSuchStyle", "hello"))
}
