package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/prosperworks/internal/constants"
	"github.com/fivetwenty-io/prosperworks/internal/http"
	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired        = errors.New("configuration is required")
	ErrUnsupportedAPIVersion = errors.New("unsupported API version")
)

// Client implements the prosperworks.Client interface.
type Client struct {
	httpClient *http.Client
	session    *Session
	cache      prosperworks.Cache
	baseURL    string
	logger     prosperworks.Logger

	// Resource clients
	account         *AccountClient
	companies       *CompaniesClient
	people          *PeopleClient
	leads           *LeadsClient
	opportunities   *OpportunitiesClient
	tasks           *TasksClient
	projects        *ProjectsClient
	users           *UsersClient
	customerSources *ReferenceClient[*prosperworks.CustomerSource]
	lossReasons     *ReferenceClient[*prosperworks.LossReason]
	pipelines       *ReferenceClient[*prosperworks.Pipeline]
	pipelineStages  *ReferenceClient[*prosperworks.PipelineStage]
	contactTypes    *ReferenceClient[*prosperworks.ContactType]
}

// BaseURL resolves the API root for a config: an explicit BaseURL wins,
// otherwise the versioned developer API URL is used.
func BaseURL(config *prosperworks.Config) (string, error) {
	if config.BaseURL != "" {
		return strings.TrimSuffix(config.BaseURL, "/") + "/", nil
	}

	version := config.APIVersion
	if version == "" {
		version = constants.DefaultAPIVersion
	}

	if !slices.Contains(constants.APIVersions, version) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAPIVersion, version)
	}

	return fmt.Sprintf(constants.BaseURLTemplate, version), nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *prosperworks.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// CacheNamespace derives the reference cache key prefix for one identity.
// Reference data differs per account, so clients sharing a cache backend only
// see entries stored under their own base URL and user email.
func CacheNamespace(baseURL, email string) string {
	name := strings.TrimSuffix(baseURL, "/") + "#" + strings.ToLower(strings.TrimSpace(email))

	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// New creates a client bound to one identity. The transport and the reference
// cache are created together, so building a new client is how the identity is
// changed.
func New(ctx context.Context, config *prosperworks.Config) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	baseURL, err := BaseURL(config)
	if err != nil {
		return nil, err
	}

	backend, err := prosperworks.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("creating reference cache: %w", err)
	}

	httpClient := http.NewClient(baseURL, config.AccessToken, config.Email, createHTTPClientOptions(config)...)
	cache := prosperworks.NewReferenceCache(backend, config.CacheLife,
		prosperworks.WithNamespace(CacheNamespace(baseURL, config.Email)))
	session := NewSession(httpClient, cache)

	client := &Client{
		httpClient: httpClient,
		session:    session,
		cache:      backend,
		baseURL:    baseURL,
		logger:     config.Logger,
	}

	// Initialize resource clients
	client.initializeResourceClients()

	if client.logger != nil {
		client.logger.Debug("client created", map[string]interface{}{
			"base_url":   baseURL,
			"cache_life": session.ReferenceCache().MaxLife().String(),
		})
	}

	return client, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.account = NewAccountClient(c.session)
	c.companies = NewCompaniesClient(c.session)
	c.people = NewPeopleClient(c.session)
	c.leads = NewLeadsClient(c.session)
	c.opportunities = NewOpportunitiesClient(c.session)
	c.tasks = NewTasksClient(c.session)
	c.projects = NewProjectsClient(c.session)
	c.users = NewUsersClient(c.session)
	c.customerSources = newCustomerSourcesClient(c.session)
	c.lossReasons = newLossReasonsClient(c.session)
	c.pipelines = newPipelinesClient(c.session)
	c.pipelineStages = newPipelineStagesClient(c.session)
	c.contactTypes = newContactTypesClient(c.session)
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases the reference cache backend's connections, if any.
func (c *Client) Close() error {
	closer, ok := c.cache.(interface{ Close() error })
	if !ok {
		return nil
	}

	return closer.Close()
}

// Session implements prosperworks.Client.Session.
func (c *Client) Session() prosperworks.Session {
	return c.session
}

// Account implements prosperworks.Client.Account.
func (c *Client) Account() prosperworks.AccountClient {
	return c.account
}

// Companies implements prosperworks.Client.Companies.
func (c *Client) Companies() prosperworks.CompaniesClient {
	return c.companies
}

// People implements prosperworks.Client.People.
func (c *Client) People() prosperworks.PeopleClient {
	return c.people
}

// Leads implements prosperworks.Client.Leads.
func (c *Client) Leads() prosperworks.LeadsClient {
	return c.leads
}

// Opportunities implements prosperworks.Client.Opportunities.
func (c *Client) Opportunities() prosperworks.OpportunitiesClient {
	return c.opportunities
}

// Tasks implements prosperworks.Client.Tasks.
func (c *Client) Tasks() prosperworks.TasksClient {
	return c.tasks
}

// Projects implements prosperworks.Client.Projects.
func (c *Client) Projects() prosperworks.ProjectsClient {
	return c.projects
}

// Users implements prosperworks.Client.Users.
func (c *Client) Users() prosperworks.UsersClient {
	return c.users
}

// CustomerSources implements prosperworks.Client.CustomerSources.
func (c *Client) CustomerSources() prosperworks.CustomerSourcesClient {
	return c.customerSources
}

// LossReasons implements prosperworks.Client.LossReasons.
func (c *Client) LossReasons() prosperworks.LossReasonsClient {
	return c.lossReasons
}

// Pipelines implements prosperworks.Client.Pipelines.
func (c *Client) Pipelines() prosperworks.PipelinesClient {
	return c.pipelines
}

// PipelineStages implements prosperworks.Client.PipelineStages.
func (c *Client) PipelineStages() prosperworks.PipelineStagesClient {
	return c.pipelineStages
}

// ContactTypes implements prosperworks.Client.ContactTypes.
func (c *Client) ContactTypes() prosperworks.ContactTypesClient {
	return c.contactTypes
}

var _ prosperworks.Client = (*Client)(nil)
