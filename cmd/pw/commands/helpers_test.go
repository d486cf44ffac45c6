package commands

import (
	"bytes"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/prosperworks/internal/constants"
	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

func TestParseKeyValues(t *testing.T) {
	t.Parallel()

	got, err := parseKeyValues([]string{
		"name=Dunder Mifflin",
		"assignee_id=5",
		"tags=[\"paper\"]",
		"active=true",
		"note=a=b",
	}, constants.ErrInvalidFieldFormat)
	require.NoError(t, err)

	assert.Equal(t, "Dunder Mifflin", got["name"])
	assert.Equal(t, json.Number("5"), got["assignee_id"])
	assert.Equal(t, []any{"paper"}, got["tags"])
	assert.Equal(t, true, got["active"])
	assert.Equal(t, "a=b", got["note"])
}

func TestParseKeyValues_Invalid(t *testing.T) {
	t.Parallel()

	for _, pair := range []string{"name", "=value"} {
		_, err := parseKeyValues([]string{pair}, constants.ErrInvalidFilterFormat)
		require.ErrorIs(t, err, constants.ErrInvalidFilterFormat, pair)
	}
}

func TestParseValue_TrailingInput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "5 6", parseValue("5 6"))
	assert.Equal(t, "", parseValue(""))
}

func TestListColumns(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"id", "name"}, listColumns(prosperworks.CompanySchema))
	assert.Equal(t, []string{"id", "name", "email"}, listColumns(prosperworks.UserSchema))
	assert.Equal(t, []string{"id", "name", "win_probability"}, listColumns(prosperworks.StageSchema))
}

func TestHeaderName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Postal Code", headerName("postal_code"))
	assert.Equal(t, "Name", headerName("name"))
}

func TestPlain(t *testing.T) {
	t.Parallel()

	got := plain(map[string]any{
		"id":     json.Number("42"),
		"value":  json.Number("1.5"),
		"phones": []map[string]any{{"number": "555"}},
		"tags":   []any{json.Number("7")},
	})

	assert.Equal(t, map[string]any{
		"id":     int64(42),
		"value":  1.5,
		"phones": []any{map[string]any{"number": "555"}},
		"tags":   []any{int64(7)},
	}, got)
}

func TestEncode_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := encode(&buf, constants.FormatYAML, map[string]any{"id": json.Number("42")})
	require.NoError(t, err)
	assert.Equal(t, "id: 42\n", buf.String())
}

func TestFormatCell(t *testing.T) {
	t.Parallel()

	tags := prosperworks.NewSimpleList()
	tags.Append("a", "b")

	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "a, b", formatCell(tags))
	assert.Equal(t, "12", formatCell(json.Number("12")))
	assert.Equal(t, `{"city":"Reno"}`, formatCell(map[string]any{"city": "Reno"}))
}

func TestOutputFormat_Unsupported(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(keyOutput, "xml")

	_, err := outputFormat()
	require.ErrorIs(t, err, constants.ErrUnsupportedFormat)
}

func TestCacheConfig_NATSBucketTTL(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(keyCacheType, "nats")
	viper.Set(keyNATSURL, "nats://127.0.0.1:4222")
	viper.Set(keyCacheLife, "30m")

	config := cacheConfig()
	require.NotNil(t, config.NATS)
	assert.Equal(t, prosperworks.CacheTypeNATS, config.Type)
	assert.Equal(t, "nats://127.0.0.1:4222", config.NATS.URL)
	assert.Equal(t, 30*time.Minute, config.NATS.TTL)

	viper.Set(keyCacheLife, "")
	assert.Equal(t, constants.DefaultCacheLife, cacheConfig().NATS.TTL)
}

func TestCacheConfig_Memory(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	config := cacheConfig()
	assert.Nil(t, config.NATS)
	assert.Equal(t, prosperworks.CacheType(""), config.Type)
}
