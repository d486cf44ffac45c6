package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/prosperworks/internal/constants"
	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

// resourceCommand describes one top-level resource command. The available
// subcommands follow from the resource schema.
type resourceCommand struct {
	endpoint string
	aliases  []string
	// cacheKey marks reference data, listed through the reference cache.
	cacheKey string
}

var resourceCommands = []resourceCommand{
	{endpoint: "companies", aliases: []string{"company"}},
	{endpoint: "people", aliases: []string{"person"}},
	{endpoint: "leads", aliases: []string{"lead"}},
	{endpoint: "opportunities", aliases: []string{"opportunity", "opps"}},
	{endpoint: "tasks", aliases: []string{"task"}},
	{endpoint: "projects", aliases: []string{"project"}},
	{endpoint: "users", aliases: []string{"user"}},
	{endpoint: "contact_types", cacheKey: constants.CacheKeyContactTypes},
	{endpoint: "customer_sources", cacheKey: constants.CacheKeyCustomerSources},
	{endpoint: "loss_reasons", cacheKey: constants.CacheKeyLossReasons},
	{endpoint: "pipelines", aliases: []string{"pipeline"}, cacheKey: constants.CacheKeyPipelines},
	{endpoint: "pipeline_stages", cacheKey: constants.CacheKeyPipelineStages},
}

// NewResourceCommands creates one command per resource.
func NewResourceCommands() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(resourceCommands))

	for _, rc := range resourceCommands {
		schema, ok := prosperworks.SchemaFor(rc.endpoint)
		if !ok {
			continue
		}

		cmds = append(cmds, newResourceCommand(rc, schema))
	}

	return cmds
}

func newResourceCommand(rc resourceCommand, schema *prosperworks.Schema) *cobra.Command {
	label := strings.ReplaceAll(rc.endpoint, "_", " ")

	cmd := &cobra.Command{
		Use:     strings.ReplaceAll(rc.endpoint, "_", "-"),
		Aliases: rc.aliases,
		Short:   "Manage " + label,
	}

	cmd.AddCommand(newListCommand(rc, schema))

	if rc.cacheKey != "" {
		cmd.Short = "List " + label
		cmd.Long = "List " + label + ". Results are cached for the configured cache life."

		return cmd
	}

	cmd.AddCommand(newGetCommand(schema))

	if schema.Searchable() {
		cmd.AddCommand(newSearchCommand(schema))
	}

	if len(schema.CreateFields) > 0 {
		cmd.AddCommand(newCreateCommand(schema))
		cmd.AddCommand(newUpdateCommand(schema))
		cmd.AddCommand(newDeleteCommand(schema))
	}

	switch rc.endpoint {
	case prosperworks.PersonSchema.Endpoint:
		cmd.AddCommand(newFetchByEmailCommand())
	case prosperworks.LeadSchema.Endpoint:
		cmd.AddCommand(newConvertCommand())
	}

	return cmd
}

func newListCommand(rc resourceCommand, schema *prosperworks.Schema) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + strings.ReplaceAll(rc.endpoint, "_", " "),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, func(ctx context.Context, client prosperworks.Client) error {
				var (
					entities []*prosperworks.Entity
					err      error
				)

				if rc.cacheKey != "" {
					entities, err = prosperworks.CachedList(ctx, client.Session(), schema, rc.cacheKey)
				} else {
					entities, err = prosperworks.List(ctx, client.Session(), schema)
				}

				if err != nil {
					return err
				}

				return printEntities(cmd, schema, entities)
			})
		},
	}
}

func newGetCommand(schema *prosperworks.Schema) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get " + schema.Name + " details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client prosperworks.Client) error {
				e, err := prosperworks.Construct(ctx, client.Session(), schema, args[0])
				if err != nil {
					return err
				}

				return printEntity(cmd, e)
			})
		},
	}
}

func newSearchCommand(schema *prosperworks.Schema) *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search " + schema.Endpoint,
		Long: fmt.Sprintf("Search %s. Accepted filters: %s.",
			schema.Endpoint, strings.Join(schema.SearchFields, ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := parseKeyValues(filters, constants.ErrInvalidFilterFormat)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client prosperworks.Client) error {
				entities, err := prosperworks.Search(ctx, client.Session(), schema, query)
				if err != nil {
					return err
				}

				return printEntities(cmd, schema, entities)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "search filter as key=value (repeatable)")

	return cmd
}

func newCreateCommand(schema *prosperworks.Schema) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + schema.Name,
		Long: fmt.Sprintf("Create a %s. Accepted fields: %s.",
			schema.Name, strings.Join(schema.CreateFields, ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := parseKeyValues(fields, constants.ErrInvalidFieldFormat)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client prosperworks.Client) error {
				e, err := prosperworks.Create(ctx, client.Session(), schema, payload)
				if err != nil {
					return err
				}

				return printEntity(cmd, e)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "field as key=value (repeatable)")

	return cmd
}

func newUpdateCommand(schema *prosperworks.Schema) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a " + schema.Name,
		Long:  "Update a " + schema.Name + ". Only the given fields are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parseKeyValues(fields, constants.ErrInvalidFieldFormat)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client prosperworks.Client) error {
				e := prosperworks.FromSimpleDict(schema, map[string]any{schema.Identity(): args[0]})
				e.Bind(client.Session())

				names := make([]string, 0, len(payload))

				for name, value := range payload {
					e.Set(name, value)
					names = append(names, name)
				}

				_, err := prosperworks.Update(ctx, e, names...)
				if err != nil {
					return err
				}

				return printEntity(cmd, e)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "field as key=value (repeatable)")

	return cmd
}

func newDeleteCommand(schema *prosperworks.Schema) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + schema.Name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client prosperworks.Client) error {
				e := prosperworks.FromSimpleDict(schema, map[string]any{schema.Identity(): args[0]})
				e.Bind(client.Session())

				data, err := prosperworks.Delete(ctx, e)
				if err != nil {
					return err
				}

				return printData(cmd, data)
			})
		},
	}
}

func newFetchByEmailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch-by-email EMAIL",
		Short: "Find a person by email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client prosperworks.Client) error {
				person, err := client.People().FetchByEmail(ctx, args[0])
				if err != nil {
					return err
				}

				return printEntity(cmd, person.Entity)
			})
		},
	}
}

func newConvertCommand() *cobra.Command {
	var details []string

	cmd := &cobra.Command{
		Use:   "convert ID",
		Short: "Convert a lead into a person, company and opportunity",
		Long: `Convert a lead. Details such as person, company or opportunity may be
given as key=value pairs with JSON values, e.g. --detail 'company={"id":7}'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parseKeyValues(details, constants.ErrInvalidFieldFormat)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client prosperworks.Client) error {
				lead := prosperworks.WrapLead(prosperworks.FromSimpleDict(
					prosperworks.LeadSchema, map[string]any{"id": args[0]}))

				result, err := client.Leads().Convert(ctx, lead, payload)
				if err != nil {
					return err
				}

				return printConversion(cmd, result)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&details, "detail", "d", nil, "conversion detail as key=value (repeatable)")

	return cmd
}

func printConversion(cmd *cobra.Command, result *prosperworks.LeadConversion) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	out := map[string]any{}

	if result.Person != nil {
		out["person"] = result.Person.Serialize()
	}

	if result.Company != nil {
		out["company"] = result.Company.Serialize()
	}

	if result.Opportunity != nil {
		out["opportunity"] = result.Opportunity.Serialize()
	}

	if format != constants.FormatTable {
		return encode(cmd.OutOrStdout(), format, out)
	}

	rows := make([][]string, 0, len(out))

	for _, kind := range []string{"person", "company", "opportunity"} {
		v, ok := out[kind].(map[string]any)
		if !ok {
			continue
		}

		rows = append(rows, []string{headerName(kind), formatCell(v["id"]), formatCell(v["name"])})
	}

	return renderTable(cmd.OutOrStdout(), []string{"Type", "ID", "Name"}, rows)
}
