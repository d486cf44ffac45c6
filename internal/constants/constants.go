package constants

import "time"

// Version of the client library, reported in the default User-Agent.
const Version = "0.1.0"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Remote API.
const (
	// BaseURLTemplate is the developer API root; %s is the API version segment.
	BaseURLTemplate = "https://api.prosperworks.com/developer_api/%s/"

	// DefaultAPIVersion is the first entry of APIVersions.
	DefaultAPIVersion = "v1"
)

// APIVersions lists the API versions the client knows how to talk to.
var APIVersions = []string{DefaultAPIVersion}

// Request headers.
const (
	// ContentType is sent on every request.
	ContentType = "application/json"

	// Application identifies this client to the remote API.
	Application = "developer_api"

	HeaderContentType = "Content-Type"
	HeaderAccessToken = "X-PW-AccessToken"
	HeaderApplication = "X-PW-Application"
	HeaderUserEmail   = "X-PW-UserEmail"
	HeaderUserAgent   = "User-Agent"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Cache defaults.
const (
	// DefaultCacheLife is how long reference data stays cached.
	DefaultCacheLife = 3600 * time.Second

	// DefaultNATSBucket is the key-value bucket used by the NATS cache backend.
	DefaultNATSBucket = "prosperworks_reference"
)

// Cache keys for reference data.
const (
	CacheKeyContactTypes    = "contact_types"
	CacheKeyPipelines       = "pipelines"
	CacheKeyPipelineStages  = "pipeline_stages"
	CacheKeyCustomerSources = "customer_sources"
	CacheKeyLossReasons     = "loss_reasons"
)

// Search defaults.
const (
	// DefaultPageSize is the page size the remote search applies when none is sent.
	DefaultPageSize = 20

	// MaxPageSize is the largest page size the remote search accepts.
	MaxPageSize = 200
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndentSize is the indentation used for JSON and YAML output.
	JSONIndentSize = 2
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
