//go:build integration

package integration

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
	"github.com/fivetwenty-io/prosperworks/pkg/pwclient"
)

// ClientIntegrationTestSuite exercises the library client against the live API
type ClientIntegrationTestSuite struct {
	suite.Suite

	config *TestConfig
	client prosperworks.Client
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *ClientIntegrationTestSuite) SetupSuite() {
	s.config = LoadTestConfig()
	s.config.SkipIfMissingCredentials(s.T())

	config := &prosperworks.Config{
		AccessToken: s.config.AccessToken,
		Email:       s.config.Email,
		CacheLife:   time.Minute,
	}

	if s.config.NATSURL != "" {
		config.Cache = &prosperworks.CacheConfig{
			Type: prosperworks.CacheTypeNATS,
			NATS: &prosperworks.NATSKVConfig{URL: s.config.NATSURL, Bucket: "pw_integration"},
		}
	}

	if s.config.Verbose {
		config.Debug = true
		config.Logger = prosperworks.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	client, err := pwclient.New(context.Background(), config)
	s.Require().NoError(err)

	s.client = client
}

func (s *ClientIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		s.NoError(s.client.Close())
	}
}

func (s *ClientIntegrationTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), time.Minute)
}

func (s *ClientIntegrationTestSuite) TearDownTest() {
	s.cancel()
}

func (s *ClientIntegrationTestSuite) TestAccount() {
	account, err := s.client.Account().Get(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(account.Name())
}

func (s *ClientIntegrationTestSuite) TestReferenceDataIsCached() {
	_, err := s.client.Pipelines().List(s.ctx)
	s.Require().NoError(err)

	before := s.client.Session().ReferenceCache().Stats()

	_, err = s.client.Pipelines().List(s.ctx)
	s.Require().NoError(err)

	after := s.client.Session().ReferenceCache().Stats()
	s.Equal(before.Hits+1, after.Hits)
	s.Equal(before.Misses, after.Misses)
}

func (s *ClientIntegrationTestSuite) TestCompanyLifecycle() {
	name := GenerateTestName("pw-client-integration")

	company, err := s.client.Companies().Create(s.ctx, map[string]any{"name": name})
	s.Require().NoError(err)

	defer func() { _, _ = s.client.Companies().Delete(s.ctx, company) }()

	fetched, err := s.client.Companies().Get(s.ctx, company.ID())
	s.Require().NoError(err)
	s.Equal(name, fetched.Name())

	fetched.Set("details", "updated")
	s.Require().NoError(s.client.Companies().Update(s.ctx, fetched, "details"))
	s.Equal("updated", fetched.Text("details"))

	results, err := s.client.Companies().Search(s.ctx, map[string]any{"name": name})
	s.Require().NoError(err)
	s.NotEmpty(results)

	if fetched.IsSet("contact_type_id") {
		_, err = fetched.ContactType(s.ctx)
		s.NoError(err)
	}
}

func TestClientIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ClientIntegrationTestSuite))
}
