package manifest

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/doccbuilder/internal/foundation/errors"
)

func TestParse_Fixture(t *testing.T) {
	data, err := os.ReadFile("testdata/TestProject.json")
	require.NoError(t, err)

	pkg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "TestProject", pkg.Name)
	assert.Len(t, pkg.Products, 3)
	assert.Len(t, pkg.Targets, 2)
	assert.Equal(t, []string{"TestProject1", "TestProject2"}, pkg.UniqueTargets())
}

func TestParse_SkipsLeadingNoise(t *testing.T) {
	pkg, err := Parse([]byte("Fetching https://github.com/apple/swift-docc-plugin\n{\"name\":\"P\",\"products\":[]}"))
	require.NoError(t, err)
	assert.Equal(t, "P", pkg.Name)
	assert.Empty(t, pkg.UniqueTargets())
}

func TestParse_NoiseWithBraces(t *testing.T) {
	out := "warning: 'swift-docc-plugin': found 1 file(s) which are unhandled {Sources/Docs.docc}\n" +
		"Resolved {1 package}\n" +
		"{\n  \"name\": \"P\",\n  \"products\": [{\"name\": \"P\", \"targets\": [\"A\"]}]\n}\n"
	pkg, err := Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "P", pkg.Name)
	assert.Equal(t, []string{"A"}, pkg.UniqueTargets())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("not json"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryManifest))

	_, err = Parse([]byte(`{"products":[]}`))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryManifest))
}

func TestUniqueTargets_Deduplicates(t *testing.T) {
	pkg := &Package{
		Name: "P",
		Products: []Product{
			{Name: "P1", Targets: []string{"A", "B"}},
			{Name: "P2", Targets: []string{"B", "C"}},
		},
	}
	assert.Equal(t, []string{"A", "B", "C"}, pkg.UniqueTargets())
}
