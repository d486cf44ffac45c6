// Package prosperworks maps ProsperWorks CRM developer API resources onto
// in-process entities.
//
// Every resource is described by a Schema: its endpoint, an ordered field
// table and the lazy relations derived from it. Entities are populated from
// decoded JSON by the engine functions in this package (Construct, Populate,
// PopulateList, Create, Update, Delete, List, Search) and serialized back with
// Entity.Serialize. Typed wrappers such as Company and Person embed *Entity
// and add accessors and relation resolvers.
//
// Requests go through a Session, normally the client returned by
// pwclient.New:
//
//	client, err := pwclient.New(ctx, &prosperworks.Config{
//		AccessToken: os.Getenv("PW_ACCESS_TOKEN"),
//		Email:       "jim@dundermifflin.com",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	company, err := client.Companies().Get(ctx, 9607580)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(company.Name(), company.Address().Text("city"))
//
// Reference data (contact types, pipelines, pipeline stages, customer sources
// and loss reasons) is read through a ReferenceCache and reused for
// Config.CacheLife.
package prosperworks
