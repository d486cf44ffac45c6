package prosperworks

import (
	"context"
	"time"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// AccessToken and Email identify the calling user. They are only checked when
// a request is made, so a client built without them fails every call with
// ErrNotConfigured. Build a new client to change identity: the transport and
// the reference cache are replaced together.
type Config struct {
	// AccessToken is sent as X-PW-AccessToken.
	AccessToken string
	// Email is sent as X-PW-UserEmail.
	Email string
	// APIVersion selects the URL version segment. Defaults to "v1".
	APIVersion string
	// BaseURL overrides the URL derived from APIVersion, mainly for tests.
	BaseURL string

	// CacheLife bounds how long reference data (contact types, pipelines,
	// customer sources, loss reasons) is reused. Defaults to one hour.
	CacheLife time.Duration
	// Cache selects the reference cache backend. Defaults to in-memory.
	Cache *CacheConfig

	// HTTPTimeout bounds a single request. Defaults to 30s.
	HTTPTimeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger
}

// Session carries requests for the model engine. It is implemented by the
// concrete client; entities keep the session they were created through.
type Session interface {
	// Do performs one request. GET and DELETE payloads become query
	// parameters, POST and PUT payloads the JSON body. The decoded JSON body
	// is returned.
	Do(ctx context.Context, method, path string, payload map[string]any) (any, error)
	// ReferenceCache returns the cache for reference data.
	ReferenceCache() *ReferenceCache
}

// Resource is implemented by every typed resource through its embedded Entity.
type Resource interface {
	Record() *Entity
}

// Getter fetches one resource by id.
type Getter[T Resource] interface {
	Get(ctx context.Context, id any) (T, error)
}

// Lister returns every resource of a type.
type Lister[T Resource] interface {
	List(ctx context.Context) ([]T, error)
}

// Searcher runs a filtered search.
type Searcher[T Resource] interface {
	Search(ctx context.Context, query map[string]any) ([]T, error)
}

// Creator creates a resource from an allow-listed field set.
type Creator[T Resource] interface {
	Create(ctx context.Context, fields map[string]any) (T, error)
}

// Updater writes a resource back and refreshes it from the response.
type Updater[T Resource] interface {
	Update(ctx context.Context, resource T, fields ...string) error
}

// Deleter removes a resource.
type Deleter[T Resource] interface {
	Delete(ctx context.Context, resource T) (*Data, error)
}

// CRUD bundles every capability of a fully writable, searchable resource.
type CRUD[T Resource] interface {
	Getter[T]
	Lister[T]
	Searcher[T]
	Creator[T]
	Updater[T]
	Deleter[T]
}

// AccountClient reads the account the credentials belong to.
type AccountClient interface {
	Get(ctx context.Context) (*Account, error)
}

// CompaniesClient manages companies.
type CompaniesClient interface {
	CRUD[*Company]
}

// PeopleClient manages people.
type PeopleClient interface {
	CRUD[*Person]
	FetchByEmail(ctx context.Context, email string) (*Person, error)
}

// LeadsClient manages leads.
type LeadsClient interface {
	CRUD[*Lead]
	Convert(ctx context.Context, lead *Lead, details map[string]any) (*LeadConversion, error)
}

// OpportunitiesClient manages opportunities.
type OpportunitiesClient interface {
	CRUD[*Opportunity]
}

// TasksClient manages tasks.
type TasksClient interface {
	CRUD[*Task]
}

// ProjectsClient manages projects.
type ProjectsClient interface {
	CRUD[*Project]
}

// UsersClient reads users.
type UsersClient interface {
	Getter[*User]
	Lister[*User]
	Searcher[*User]
}

// CustomerSourcesClient lists customer sources.
type CustomerSourcesClient interface {
	Lister[*CustomerSource]
}

// LossReasonsClient lists loss reasons.
type LossReasonsClient interface {
	Lister[*LossReason]
}

// PipelinesClient lists pipelines.
type PipelinesClient interface {
	Lister[*Pipeline]
}

// PipelineStagesClient lists pipeline stages.
type PipelineStagesClient interface {
	Lister[*PipelineStage]
}

// ContactTypesClient lists contact types.
type ContactTypesClient interface {
	Lister[*ContactType]
}

// Client provides access to every resource client.
type Client interface {
	Account() AccountClient
	Companies() CompaniesClient
	People() PeopleClient
	Leads() LeadsClient
	Opportunities() OpportunitiesClient
	Tasks() TasksClient
	Projects() ProjectsClient
	Users() UsersClient
	CustomerSources() CustomerSourcesClient
	LossReasons() LossReasonsClient
	Pipelines() PipelinesClient
	PipelineStages() PipelineStagesClient
	ContactTypes() ContactTypesClient

	// Session exposes the engine session for resources without a typed client.
	Session() Session
	// Close releases connections held by the reference cache backend.
	Close() error
}
