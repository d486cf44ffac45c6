package prosperworks

import (
	"sort"

	"github.com/fivetwenty-io/prosperworks/internal/constants"
)

// Flat value types embedded in resources.
var (
	AddressSchema = &Schema{
		Name:   "Address",
		Fields: Scalars("street", "city", "state", "postal_code", "country"),
	}

	PhoneNumberSchema = &Schema{
		Name:   "PhoneNumber",
		Fields: Scalars("number", "category"),
	}

	EmailAddressSchema = &Schema{
		Name:   "EmailAddress",
		Fields: Scalars("email", "category"),
	}

	SocialSchema = &Schema{
		Name:   "Social",
		Fields: Scalars("url", "category"),
	}

	WebsiteSchema = &Schema{
		Name:   "Website",
		Fields: Scalars("url", "category"),
	}

	CustomFieldSchema = &Schema{
		Name:    "CustomField",
		IDField: "custom_field_definition_id",
		Fields:  Scalars("custom_field_definition_id", "value"),
	}

	StageSchema = &Schema{
		Name:   "Stage",
		Fields: Scalars("id", "name", "win_probability"),
	}

	RelatedResourceSchema = &Schema{
		Name:   "RelatedResource",
		Fields: Scalars("id", "type"),
	}
)

// Reference data, listed through the reference cache.
var (
	AccountSchema = &Schema{
		Name:     "Account",
		Endpoint: "account",
		Fields:   Scalars("id", "name"),
	}

	ContactTypeSchema = &Schema{
		Name:     "ContactType",
		Endpoint: "contact_types",
		Fields:   Scalars("id", "name"),
	}

	CustomerSourceSchema = &Schema{
		Name:     "CustomerSource",
		Endpoint: "customer_sources",
		Fields:   Scalars("id", "name"),
	}

	LossReasonSchema = &Schema{
		Name:     "LossReason",
		Endpoint: "loss_reasons",
		Fields:   Scalars("id", "name"),
	}

	PipelineSchema = &Schema{
		Name:     "Pipeline",
		Endpoint: "pipelines",
		Fields: append(Scalars("id", "name"),
			Objects("stages", StageSchema),
		),
	}

	PipelineStageSchema = &Schema{
		Name:     "PipelineStage",
		Endpoint: "pipeline_stages",
		Fields:   Scalars("id", "name", "pipeline_id", "win_probability"),
		Lazy: []LazyField{
			{Name: "pipeline", Resolve: FromReference(PipelineSchema, constants.CacheKeyPipelines, "pipeline_id")},
		},
	}
)

var UserSchema = &Schema{
	Name:         "User",
	Endpoint:     "users",
	Fields:       Scalars("id", "name", "email"),
	SearchFields: []string{"page_number", "page_size"},
}

var CompanySchema = &Schema{
	Name:     "Company",
	Endpoint: "companies",
	Fields: append(Scalars("id", "name"),
		Nested("address", AddressSchema),
		Field{Name: "assignee_id"},
		Field{Name: "contact_type_id"},
		Field{Name: "details"},
		Field{Name: "email_domain"},
		Objects("phone_numbers", PhoneNumberSchema),
		Objects("socials", SocialSchema),
		Values("tags"),
		Objects("websites", WebsiteSchema),
		Field{Name: "date_created"},
		Field{Name: "date_modified"},
		Objects("custom_fields", CustomFieldSchema),
		Field{Name: "interaction_count"},
	),
	Lazy: []LazyField{
		{Name: "assignee", Resolve: ByID(UserSchema, "assignee_id")},
		{Name: "contact_type", Resolve: FromReference(ContactTypeSchema, constants.CacheKeyContactTypes, "contact_type_id")},
	},
	CreateFields: []string{
		"name", "address", "assignee_id", "contact_type_id", "details",
		"email_domain", "phone_numbers", "socials", "tags", "websites", "custom_fields",
	},
	SearchFields: []string{
		"page_number", "page_size", "sort_by", "sort_direction", "name",
		"phone_number", "email_domains", "contact_type_ids", "assignee_ids",
		"city", "state", "postal_code", "country", "tags", "age",
		"minimum_interaction_count", "maximum_interaction_count",
		"minimum_interaction_date", "maximum_interaction_date",
		"minimum_created_date", "maximum_created_date",
	},
}

var PersonSchema = &Schema{
	Name:     "Person",
	Endpoint: "people",
	Fields: append(Scalars("id", "name", "prefix", "first_name", "middle_name", "last_name", "suffix"),
		Nested("address", AddressSchema),
		Field{Name: "assignee_id"},
		Field{Name: "company_id"},
		Field{Name: "company_name"},
		Field{Name: "contact_type_id"},
		Field{Name: "details"},
		Objects("emails", EmailAddressSchema),
		Objects("phone_numbers", PhoneNumberSchema),
		Objects("socials", SocialSchema),
		Values("tags"),
		Field{Name: "title"},
		Objects("websites", WebsiteSchema),
		Field{Name: "date_created"},
		Field{Name: "date_modified"},
		Objects("custom_fields", CustomFieldSchema),
		Field{Name: "interaction_count"},
	),
	Lazy: []LazyField{
		{Name: "assignee", Resolve: ByID(UserSchema, "assignee_id")},
		{Name: "company", Resolve: ByID(CompanySchema, "company_id")},
		{Name: "contact_type", Resolve: FromReference(ContactTypeSchema, constants.CacheKeyContactTypes, "contact_type_id")},
	},
	CreateFields: []string{
		"name", "prefix", "first_name", "middle_name", "last_name", "suffix",
		"address", "assignee_id", "company_id", "company_name", "contact_type_id",
		"details", "emails", "phone_numbers", "socials", "tags", "title",
		"websites", "custom_fields",
	},
	SearchFields: []string{
		"page_number", "page_size", "sort_by", "sort_direction", "name",
		"phone_number", "emails", "contact_type_ids", "assignee_ids",
		"company_ids", "city", "state", "postal_code", "country", "tags", "age",
		"minimum_interaction_count", "maximum_interaction_count",
		"minimum_interaction_date", "maximum_interaction_date",
		"minimum_created_date", "maximum_created_date",
	},
}

var LeadSchema = &Schema{
	Name:     "Lead",
	Endpoint: "leads",
	Fields: append(Scalars("id", "name", "prefix", "first_name", "middle_name", "last_name", "suffix"),
		Nested("address", AddressSchema),
		Field{Name: "assignee_id"},
		Field{Name: "company_name"},
		Field{Name: "customer_source_id"},
		Field{Name: "details"},
		Nested("email", EmailAddressSchema),
		Field{Name: "monetary_value"},
		Objects("phone_numbers", PhoneNumberSchema),
		Objects("socials", SocialSchema),
		Field{Name: "status"},
		Values("tags"),
		Field{Name: "title"},
		Objects("websites", WebsiteSchema),
		Field{Name: "date_created"},
		Field{Name: "date_modified"},
		Objects("custom_fields", CustomFieldSchema),
	),
	Lazy: []LazyField{
		{Name: "assignee", Resolve: ByID(UserSchema, "assignee_id")},
		{Name: "customer_source", Resolve: FromReference(CustomerSourceSchema, constants.CacheKeyCustomerSources, "customer_source_id")},
	},
	CreateFields: []string{
		"name", "prefix", "first_name", "middle_name", "last_name", "suffix",
		"address", "assignee_id", "company_name", "customer_source_id", "details",
		"email", "monetary_value", "phone_numbers", "socials", "status", "tags",
		"title", "websites", "custom_fields",
	},
	SearchFields: []string{
		"page_number", "page_size", "sort_by", "sort_direction", "name",
		"phone_number", "emails", "assignee_ids", "status_ids",
		"customer_source_ids", "city", "state", "postal_code", "country", "tags",
		"minimum_monetary_value", "maximum_monetary_value",
		"minimum_created_date", "maximum_created_date",
	},
}

var OpportunitySchema = &Schema{
	Name:     "Opportunity",
	Endpoint: "opportunities",
	Fields: append(Scalars("id", "name"),
		Field{Name: "assignee_id"},
		Field{Name: "close_date"},
		Field{Name: "company_id"},
		Field{Name: "company_name"},
		Field{Name: "customer_source_id"},
		Field{Name: "details"},
		Field{Name: "loss_reason_id"},
		Field{Name: "monetary_value"},
		Field{Name: "pipeline_id"},
		Field{Name: "pipeline_stage_id"},
		Field{Name: "primary_contact_id"},
		Field{Name: "priority"},
		Field{Name: "status"},
		Values("tags"),
		Field{Name: "win_probability"},
		Field{Name: "date_created"},
		Field{Name: "date_modified"},
		Objects("custom_fields", CustomFieldSchema),
	),
	Lazy: []LazyField{
		{Name: "assignee", Resolve: ByID(UserSchema, "assignee_id")},
		{Name: "company", Resolve: ByID(CompanySchema, "company_id")},
		{Name: "primary_contact", Resolve: ByID(PersonSchema, "primary_contact_id")},
		{Name: "customer_source", Resolve: FromReference(CustomerSourceSchema, constants.CacheKeyCustomerSources, "customer_source_id")},
		{Name: "loss_reason", Resolve: FromReference(LossReasonSchema, constants.CacheKeyLossReasons, "loss_reason_id")},
		{Name: "pipeline", Resolve: FromReference(PipelineSchema, constants.CacheKeyPipelines, "pipeline_id")},
		{Name: "pipeline_stage", Resolve: FromReference(PipelineStageSchema, constants.CacheKeyPipelineStages, "pipeline_stage_id")},
	},
	CreateFields: []string{
		"name", "assignee_id", "close_date", "company_id", "company_name",
		"customer_source_id", "details", "loss_reason_id", "monetary_value",
		"pipeline_id", "pipeline_stage_id", "primary_contact_id", "priority",
		"status", "tags", "win_probability", "custom_fields",
	},
	SearchFields: []string{
		"page_number", "page_size", "sort_by", "sort_direction", "name",
		"assignee_ids", "company_ids", "pipeline_ids", "pipeline_stage_ids",
		"primary_contact_ids", "priority", "customer_source_ids",
		"loss_reason_ids", "tags", "status",
		"minimum_monetary_value", "maximum_monetary_value",
		"minimum_close_date", "maximum_close_date",
		"minimum_created_date", "maximum_created_date",
	},
}

var TaskSchema = &Schema{
	Name:     "Task",
	Endpoint: "tasks",
	Fields: append(Scalars("id", "name"),
		Nested("related_resource", RelatedResourceSchema),
		Field{Name: "assignee_id"},
		Field{Name: "due_date"},
		Field{Name: "reminder_date"},
		Field{Name: "completed_date"},
		Field{Name: "priority"},
		Field{Name: "status"},
		Field{Name: "details"},
		Values("tags"),
		Field{Name: "date_created"},
		Field{Name: "date_modified"},
		Objects("custom_fields", CustomFieldSchema),
	),
	Lazy: []LazyField{
		{Name: "assignee", Resolve: ByID(UserSchema, "assignee_id")},
	},
	CreateFields: []string{
		"name", "related_resource", "assignee_id", "due_date", "reminder_date",
		"priority", "status", "details", "tags", "custom_fields",
	},
	SearchFields: []string{
		"page_number", "page_size", "sort_by", "sort_direction",
		"assignee_ids", "opportunity_ids", "project_ids", "statuses", "tags",
		"minimum_due_date", "maximum_due_date",
		"minimum_created_date", "maximum_created_date",
	},
}

var ProjectSchema = &Schema{
	Name:     "Project",
	Endpoint: "projects",
	Fields: append(Scalars("id", "name"),
		Nested("related_resource", RelatedResourceSchema),
		Field{Name: "assignee_id"},
		Field{Name: "status"},
		Field{Name: "details"},
		Values("tags"),
		Field{Name: "date_created"},
		Field{Name: "date_modified"},
		Objects("custom_fields", CustomFieldSchema),
	),
	Lazy: []LazyField{
		{Name: "assignee", Resolve: ByID(UserSchema, "assignee_id")},
	},
	CreateFields: []string{
		"name", "related_resource", "assignee_id", "status", "details", "tags", "custom_fields",
	},
	SearchFields: []string{
		"page_number", "page_size", "sort_by", "sort_direction", "name",
		"assignee_ids", "statuses", "tags",
		"minimum_created_date", "maximum_created_date",
	},
}

var schemaRegistry = map[string]*Schema{}

func init() {
	for _, s := range []*Schema{
		AccountSchema, CompanySchema, PersonSchema, LeadSchema, OpportunitySchema,
		TaskSchema, ProjectSchema, UserSchema, CustomerSourceSchema,
		LossReasonSchema, PipelineSchema, PipelineStageSchema, ContactTypeSchema,
	} {
		schemaRegistry[s.Endpoint] = s
	}
}

// SchemaFor returns the resource schema served at endpoint.
func SchemaFor(endpoint string) (*Schema, bool) {
	s, ok := schemaRegistry[endpoint]

	return s, ok
}

// Endpoints returns every registered resource endpoint, sorted.
func Endpoints() []string {
	names := make([]string, 0, len(schemaRegistry))
	for name := range schemaRegistry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
