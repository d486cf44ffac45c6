package prosperworks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

func TestNewData_WrapsNestedObjects(t *testing.T) {
	t.Parallel()

	data := prosperworks.NewData(decode(t, `{"id": 1, "owner": {"name": "Jan"}, "tags": ["a"]}`))

	assert.Equal(t, []string{"id", "owner", "tags"}, data.Keys())
	assert.True(t, data.Has("tags"))

	owner, ok := data.Get("owner")
	require.True(t, ok)

	nested, ok := owner.(*prosperworks.Data)
	require.True(t, ok)

	name, ok := nested.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Jan", name)
}

func TestNewData_NonObject(t *testing.T) {
	t.Parallel()

	data := prosperworks.NewData([]any{"a"})
	assert.Empty(t, data.Keys())
	assert.Equal(t, []any{"a"}, data.Raw())
}

func TestData_PopulateZeroValue(t *testing.T) {
	t.Parallel()

	var data prosperworks.Data
	data.Populate(map[string]any{"ok": true})
	assert.True(t, data.Has("ok"))
}
