package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range AvailableThemes() {
		thm := ByName(name)
		require.NotNil(t, thm, name)
		assert.NotEmpty(t, string(thm.Accent), name)
		assert.NotEmpty(t, string(thm.AddedFg), name)
		assert.NotEmpty(t, string(thm.RemovedFg), name)
	}

	assert.Nil(t, ByName("no-such-theme"))
	assert.Nil(t, ByName(""))
}

func TestAvailableThemesIncludesDefaults(t *testing.T) {
	names := AvailableThemes()
	assert.Contains(t, names, DraculaName)
	assert.Contains(t, names, NordName)
	assert.Contains(t, names, GruvboxDarkName)
}
