package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://github.com/flybywiresim/a32nx"))
	assert.NoError(t, ValidateURL("git@github.com:flybywiresim/a32nx.git"))
	assert.NoError(t, ValidateURL("git://example.com/repo"))

	assert.ErrorIs(t, ValidateURL("ftp://example.com/repo"), ErrInvalidURL)
	assert.ErrorIs(t, ValidateURL("flybywiresim/a32nx"), ErrInvalidURL)
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://github.com/x/y.git", NormalizeURL("https://github.com/x/y"))
	assert.Equal(t, "https://github.com/x/y.git", NormalizeURL("https://github.com/x/y.git"))
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "a32nx", PackageName("https://github.com/flybywiresim/a32nx.git"))
	assert.Equal(t, "a32nx", PackageName("https://github.com/flybywiresim/a32nx"))
	assert.Equal(t, "salty-747", PackageName("https://github.com/saltysimulations/salty-747-main"))
}
