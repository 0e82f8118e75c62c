package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `
# comment
DEMO_WIDTH=1024
export DEMO_SCENE = "scenes/alt.yaml"
DEMO_TITLE='Scene Demo'
=novalue
garbage
`
	vars, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"DEMO_WIDTH": "1024",
		"DEMO_SCENE": "scenes/alt.yaml",
		"DEMO_TITLE": "Scene Demo",
	}, vars)
}

func TestLoadKeepsRealEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEMO_ENV_A=file\nDEMO_ENV_B=file\n"), 0o644))

	t.Setenv("DEMO_ENV_A", "real")
	t.Setenv("DEMO_ENV_B", "")
	require.NoError(t, os.Unsetenv("DEMO_ENV_B"))

	require.NoError(t, Load(path))
	assert.Equal(t, "real", os.Getenv("DEMO_ENV_A"))
	assert.Equal(t, "file", os.Getenv("DEMO_ENV_B"))
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "nope.env")))
}
