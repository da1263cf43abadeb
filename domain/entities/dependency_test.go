package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDependencyCopiesInputs(t *testing.T) {
	jars := []string{"lib/a.jar"}
	packages := []string{"com.example:ext:1.0"}
	dep := NewDependency(jars, packages)

	jars[0] = "mutated"
	packages[0] = "mutated"

	assert.Equal(t, []string{"lib/a.jar"}, dep.Jars())
	assert.Equal(t, []string{"com.example:ext:1.0"}, dep.Packages())
}

func TestDependencyAccessorsCopy(t *testing.T) {
	dep := NewDependency([]string{"a.jar", "b.jar"}, nil)

	got := dep.Jars()
	got[0] = "mutated"

	assert.Equal(t, []string{"a.jar", "b.jar"}, dep.Jars())
}

func TestDependencyIsEmpty(t *testing.T) {
	assert.True(t, NewDependency(nil, nil).IsEmpty())
	assert.True(t, Dependency{}.IsEmpty())
	assert.False(t, NewDependency([]string{"a.jar"}, nil).IsEmpty())
	assert.False(t, NewDependency(nil, []string{"g:a:1"}).IsEmpty())
}

func TestDependencyJSONShape(t *testing.T) {
	dep := NewDependency([]string{"a.jar"}, []string{"g:a:1"})
	data, err := json.Marshal(dep)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jars":["a.jar"],"packages":["g:a:1"]}`, string(data))

	empty, err := json.Marshal(Dependency{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"jars":[],"packages":[]}`, string(empty))

	var decoded Dependency
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, dep.Jars(), decoded.Jars())
	assert.Equal(t, dep.Packages(), decoded.Packages())
}

func TestManifestPreservesOrderAndDuplicates(t *testing.T) {
	var manifest DependencyManifest
	manifest.Append(NewDependency([]string{"x.jar"}, []string{"g:x:1"}))
	manifest.Append(NewDependency([]string{"y.jar", "x.jar"}, nil))
	manifest.Append(NewDependency(nil, []string{"g:x:1"}))

	assert.Equal(t, []string{"x.jar", "y.jar", "x.jar"}, manifest.Jars())
	assert.Equal(t, []string{"g:x:1", "g:x:1"}, manifest.Packages())
	assert.False(t, manifest.IsEmpty())
}

func TestManifestEmpty(t *testing.T) {
	var manifest DependencyManifest
	assert.True(t, manifest.IsEmpty())
	assert.Empty(t, manifest.Jars())
	assert.Empty(t, manifest.Packages())

	manifest.Append(Dependency{})
	assert.True(t, manifest.IsEmpty())
}
