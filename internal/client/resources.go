package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/prosperworks/internal/constants"
	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

// AccountClient implements prosperworks.AccountClient.
type AccountClient struct {
	session prosperworks.Session
}

// NewAccountClient creates a new account client.
func NewAccountClient(session prosperworks.Session) *AccountClient {
	return &AccountClient{session: session}
}

// Get implements prosperworks.AccountClient.Get.
func (c *AccountClient) Get(ctx context.Context) (*prosperworks.Account, error) {
	e := prosperworks.NewEntity(prosperworks.AccountSchema).Bind(c.session)

	_, err := prosperworks.Populate(ctx, e, nil)
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	return prosperworks.WrapAccount(e), nil
}

// CompaniesClient implements prosperworks.CompaniesClient.
type CompaniesClient struct {
	crud[*prosperworks.Company]
}

// NewCompaniesClient creates a new companies client.
func NewCompaniesClient(session prosperworks.Session) *CompaniesClient {
	return &CompaniesClient{newCRUD(session, prosperworks.CompanySchema, prosperworks.WrapCompany)}
}

// PeopleClient implements prosperworks.PeopleClient.
type PeopleClient struct {
	crud[*prosperworks.Person]
}

// NewPeopleClient creates a new people client.
func NewPeopleClient(session prosperworks.Session) *PeopleClient {
	return &PeopleClient{newCRUD(session, prosperworks.PersonSchema, prosperworks.WrapPerson)}
}

// FetchByEmail implements prosperworks.PeopleClient.FetchByEmail.
func (c *PeopleClient) FetchByEmail(ctx context.Context, email string) (*prosperworks.Person, error) {
	session := c.getter.r.session
	path := prosperworks.PersonSchema.Endpoint + "/fetch_by_email"

	raw, err := session.Do(ctx, http.MethodPost, path, map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("fetching person by email: %w", err)
	}

	data, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fetching person by email: %w", prosperworks.ErrUnexpectedPayload)
	}

	e, err := prosperworks.NewEntity(prosperworks.PersonSchema).Bind(session).Merge(data)
	if err != nil {
		return nil, err
	}

	return prosperworks.WrapPerson(e), nil
}

// LeadsClient implements prosperworks.LeadsClient.
type LeadsClient struct {
	crud[*prosperworks.Lead]
}

// NewLeadsClient creates a new leads client.
func NewLeadsClient(session prosperworks.Session) *LeadsClient {
	return &LeadsClient{newCRUD(session, prosperworks.LeadSchema, prosperworks.WrapLead)}
}

// Convert implements prosperworks.LeadsClient.Convert. details may name an
// existing person, company or opportunity to attach the lead to.
func (c *LeadsClient) Convert(
	ctx context.Context,
	lead *prosperworks.Lead,
	details map[string]any,
) (*prosperworks.LeadConversion, error) {
	if lead == nil || lead.IsNew() {
		return nil, fmt.Errorf("converting lead: %w", prosperworks.ErrMissingID)
	}

	if details == nil {
		details = map[string]any{}
	}

	session := c.getter.r.session
	path := lead.Path() + "/convert"

	raw, err := session.Do(ctx, http.MethodPost, path, map[string]any{"details": details})
	if err != nil {
		return nil, fmt.Errorf("converting lead %s: %w", lead.IDString(), err)
	}

	data, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("converting lead %s: %w", lead.IDString(), prosperworks.ErrUnexpectedPayload)
	}

	return prosperworks.NewLeadConversion(session, data)
}

// OpportunitiesClient implements prosperworks.OpportunitiesClient.
type OpportunitiesClient struct {
	crud[*prosperworks.Opportunity]
}

// NewOpportunitiesClient creates a new opportunities client.
func NewOpportunitiesClient(session prosperworks.Session) *OpportunitiesClient {
	return &OpportunitiesClient{newCRUD(session, prosperworks.OpportunitySchema, prosperworks.WrapOpportunity)}
}

// TasksClient implements prosperworks.TasksClient.
type TasksClient struct {
	crud[*prosperworks.Task]
}

// NewTasksClient creates a new tasks client.
func NewTasksClient(session prosperworks.Session) *TasksClient {
	return &TasksClient{newCRUD(session, prosperworks.TaskSchema, prosperworks.WrapTask)}
}

// ProjectsClient implements prosperworks.ProjectsClient.
type ProjectsClient struct {
	crud[*prosperworks.Project]
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(session prosperworks.Session) *ProjectsClient {
	return &ProjectsClient{newCRUD(session, prosperworks.ProjectSchema, prosperworks.WrapProject)}
}

// UsersClient implements prosperworks.UsersClient.
type UsersClient struct {
	getter[*prosperworks.User]
	searcher[*prosperworks.User]
}

// NewUsersClient creates a new users client.
func NewUsersClient(session prosperworks.Session) *UsersClient {
	r := newResource(session, prosperworks.UserSchema, prosperworks.WrapUser)

	return &UsersClient{getter: getter[*prosperworks.User]{r: r}, searcher: searcher[*prosperworks.User]{r: r}}
}

// ReferenceClient lists one kind of reference data through the cache.
type ReferenceClient[T prosperworks.Resource] struct {
	cachedLister[T]
}

// NewReferenceClient creates a reference data client.
func NewReferenceClient[T prosperworks.Resource](
	session prosperworks.Session,
	schema *prosperworks.Schema,
	cacheKey string,
	wrap func(*prosperworks.Entity) T,
) *ReferenceClient[T] {
	return &ReferenceClient[T]{cachedLister[T]{r: newResource(session, schema, wrap), cacheKey: cacheKey}}
}

func newCustomerSourcesClient(session prosperworks.Session) *ReferenceClient[*prosperworks.CustomerSource] {
	return NewReferenceClient(session, prosperworks.CustomerSourceSchema,
		constants.CacheKeyCustomerSources, prosperworks.WrapCustomerSource)
}

func newLossReasonsClient(session prosperworks.Session) *ReferenceClient[*prosperworks.LossReason] {
	return NewReferenceClient(session, prosperworks.LossReasonSchema,
		constants.CacheKeyLossReasons, prosperworks.WrapLossReason)
}

func newPipelinesClient(session prosperworks.Session) *ReferenceClient[*prosperworks.Pipeline] {
	return NewReferenceClient(session, prosperworks.PipelineSchema,
		constants.CacheKeyPipelines, prosperworks.WrapPipeline)
}

func newPipelineStagesClient(session prosperworks.Session) *ReferenceClient[*prosperworks.PipelineStage] {
	return NewReferenceClient(session, prosperworks.PipelineStageSchema,
		constants.CacheKeyPipelineStages, prosperworks.WrapPipelineStage)
}

func newContactTypesClient(session prosperworks.Session) *ReferenceClient[*prosperworks.ContactType] {
	return NewReferenceClient(session, prosperworks.ContactTypeSchema,
		constants.CacheKeyContactTypes, prosperworks.WrapContactType)
}
