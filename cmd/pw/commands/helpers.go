package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/prosperworks/internal/constants"
	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
	"github.com/fivetwenty-io/prosperworks/pkg/pwclient"
)

// Configuration keys shared by flags, the config file and PW_* variables.
const (
	keyAccessToken = "access_token"
	keyEmail       = "email"
	keyAPIVersion  = "api_version"
	keyBaseURL     = "base_url"
	keyOutput      = "output"
	keyCacheType   = "cache_type"
	keyCacheLife   = "cache_life"
	keyNATSURL     = "nats_url"
	keyNATSBucket  = "nats_bucket"
)

// newClient builds a client from the merged configuration. Credentials are
// checked up front so a command fails before it reaches the network.
func newClient(ctx context.Context) (prosperworks.Client, error) {
	token := strings.TrimSpace(viper.GetString(keyAccessToken))
	if token == "" {
		return nil, constants.ErrNoAccessToken
	}

	email := strings.TrimSpace(viper.GetString(keyEmail))
	if email == "" {
		return nil, constants.ErrNoEmail
	}

	config := &prosperworks.Config{
		AccessToken: token,
		Email:       email,
		APIVersion:  viper.GetString(keyAPIVersion),
		BaseURL:     viper.GetString(keyBaseURL),
		CacheLife:   cacheLife(),
		Cache:       cacheConfig(),
	}

	if viper.GetBool("verbose") {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		config.Logger = prosperworks.NewSlogLogger(slog.New(handler))
		config.Debug = true
	}

	return pwclient.New(ctx, config)
}

func cacheConfig() *prosperworks.CacheConfig {
	cacheType := prosperworks.CacheType(viper.GetString(keyCacheType))
	if cacheType != prosperworks.CacheTypeNATS {
		return &prosperworks.CacheConfig{Type: cacheType}
	}

	return &prosperworks.CacheConfig{
		Type: cacheType,
		NATS: &prosperworks.NATSKVConfig{
			URL:    viper.GetString(keyNATSURL),
			Bucket: viper.GetString(keyNATSBucket),
			TTL:    cacheLife(),
		},
	}
}

func cacheLife() time.Duration {
	life := viper.GetDuration(keyCacheLife)
	if life <= 0 {
		return constants.DefaultCacheLife
	}

	return life
}

// withClient runs fn with a configured client and releases it afterwards.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, client prosperworks.Client) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := newClient(ctx)
	if err != nil {
		return err
	}

	defer func() { _ = client.Close() }()

	return fn(ctx, client)
}

// parseKeyValues turns repeated key=value arguments into a payload. Values
// that parse as JSON keep their type, anything else is sent as a string.
func parseKeyValues(pairs []string, errInvalid error) (map[string]any, error) {
	out := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %s", errInvalid, pair)
		}

		out[key] = parseValue(value)
	}

	return out, nil
}

func parseValue(raw string) any {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any

	if err := dec.Decode(&v); err != nil || dec.More() {
		return raw
	}

	return v
}

func outputFormat() (string, error) {
	format := viper.GetString(keyOutput)

	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}

// encode writes v as JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(v)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(constants.JSONIndentSize)

		defer func() { _ = encoder.Close() }()

		return encoder.Encode(plain(v))
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}

// plain replaces JSON numbers with Go numbers so YAML does not quote them.
func plain(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}

		if f, err := x.Float64(); err == nil {
			return f
		}

		return x.String()
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = plain(item)
		}

		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = plain(item)
		}

		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = plain(item)
		}

		return out
	default:
		return v
	}
}

// listColumns picks the table columns for a list of entities: the id plus the
// common descriptive scalars the schema declares.
func listColumns(schema *prosperworks.Schema) []string {
	columns := []string{schema.Identity()}

	for _, name := range []string{"name", "email", "title", "status", "win_probability"} {
		if f, ok := schema.Field(name); ok && f.Kind == prosperworks.KindScalar {
			columns = append(columns, name)
		}
	}

	return columns
}

var titler = cases.Title(language.English)

func headerName(field string) string {
	return titler.String(strings.ReplaceAll(field, "_", " "))
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *prosperworks.Entity:
		return compactJSON(x.Serialize())
	case *prosperworks.ObjectList:
		return compactJSON(x.Serialize())
	case *prosperworks.SimpleList:
		return strings.Join(x.Strings(), ", ")
	case map[string]any, []any:
		return compactJSON(x)
	default:
		return fmt.Sprint(x)
	}
}

func compactJSON(v any) string {
	var buf bytes.Buffer

	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return constants.NotAvailable
	}

	return strings.TrimSpace(buf.String())
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)

	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}

	table.Header(cells...)

	for _, row := range rows {
		_ = table.Append(row)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func printEntities(cmd *cobra.Command, schema *prosperworks.Schema, entities []*prosperworks.Entity) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if format != constants.FormatTable {
		items := make([]map[string]any, 0, len(entities))
		for _, e := range entities {
			items = append(items, e.Serialize())
		}

		return encode(w, format, items)
	}

	if len(entities) == 0 {
		_, _ = fmt.Fprintf(w, "No %s found\n", schema.Endpoint)

		return nil
	}

	columns := listColumns(schema)
	header := make([]string, len(columns))

	for i, c := range columns {
		header[i] = headerName(c)
	}

	rows := make([][]string, 0, len(entities))

	for _, e := range entities {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = formatCell(e.Get(c))
		}

		rows = append(rows, row)
	}

	return renderTable(w, header, rows)
}

func printEntity(cmd *cobra.Command, e *prosperworks.Entity) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if format != constants.FormatTable {
		return encode(w, format, e.Serialize())
	}

	rows := make([][]string, 0, len(e.Schema().Fields))

	for _, name := range e.Schema().FieldNames() {
		if !e.IsSet(name) {
			continue
		}

		rows = append(rows, []string{headerName(name), formatCell(e.Get(name))})
	}

	return renderTable(w, []string{"Property", "Value"}, rows)
}

func printData(cmd *cobra.Command, data *prosperworks.Data) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if format != constants.FormatTable {
		return encode(w, format, data.Raw())
	}

	rows := make([][]string, 0)

	for _, key := range data.Keys() {
		value, _ := data.Get(key)
		if nested, ok := value.(*prosperworks.Data); ok {
			value = nested.Raw()
		}

		rows = append(rows, []string{headerName(key), formatCell(value)})
	}

	return renderTable(w, []string{"Property", "Value"}, rows)
}
