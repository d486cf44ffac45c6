// Package pwclient provides the entry point for constructing a ProsperWorks
// developer API client that implements the prosperworks.Client interface.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
//	  "github.com/fivetwenty-io/prosperworks/pkg/pwclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := pwclient.NewWithCredentials(ctx, "access-token", "jim@dundermifflin.com")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  people, err := cli.People().Search(ctx, map[string]any{"name": "Pam"})
//	  if err != nil { log.Fatal(err) }
//	  _ = people
//	}
//
// # Reference cache
//
// Contact types, pipelines, pipeline stages, customer sources and loss reasons
// are cached in memory for Config.CacheLife. Set Config.Cache to share them
// between processes through a NATS JetStream key-value bucket:
//
//	cli, err := pwclient.New(ctx, &prosperworks.Config{
//	  AccessToken: token,
//	  Email:       email,
//	  Cache: &prosperworks.CacheConfig{
//	    Type: prosperworks.CacheTypeNATS,
//	    NATS: &prosperworks.NATSKVConfig{URL: "nats://127.0.0.1:4222"},
//	  },
//	})
package pwclient
