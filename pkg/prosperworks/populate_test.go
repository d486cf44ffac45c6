package prosperworks_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

const companyPayload = `{
	"id": 9607580,
	"name": "Dunder Mifflin",
	"address": {"street": "213 West Main Street", "city": "Reno", "state": "NV", "postal_code": "89501", "country": null},
	"assignee_id": null,
	"contact_type_id": 451490,
	"details": "Paper company",
	"email_domain": "dundermifflin.com",
	"phone_numbers": [{"number": "415-123-45678", "category": "work"}],
	"socials": [],
	"tags": ["paper", "scranton"],
	"websites": [{"url": "http://www.dundermifflin.com", "category": "work"}],
	"date_created": 1489018784,
	"date_modified": 1496692911,
	"custom_fields": [{"custom_field_definition_id": 100764, "value": "Scranton"}],
	"favorite_color": "blue"
}`

func TestMerge_PopulatesEveryKind(t *testing.T) {
	t.Parallel()

	company, err := prosperworks.NewEntity(prosperworks.CompanySchema).Merge(decodeObject(t, companyPayload))
	require.NoError(t, err)

	assert.Equal(t, "9607580", company.IDString())
	assert.Equal(t, "Dunder Mifflin", company.Text("name"))
	assert.Equal(t, "Reno", company.Nested("address").Text("city"))
	assert.Nil(t, company.Nested("address").Get("country"))

	require.Equal(t, 1, company.Objects("phone_numbers").Len())
	assert.Equal(t, "415-123-45678", company.Objects("phone_numbers").Items()[0].Text("number"))
	assert.Equal(t, 0, company.Objects("socials").Len())
	assert.Equal(t, []string{"paper", "scranton"}, company.Values("tags").Strings())

	field := company.Objects("custom_fields").Items()[0]
	assert.Equal(t, "100764", field.IDString())

	modified, ok := company.Int64("date_modified")
	require.True(t, ok)
	assert.Equal(t, int64(1496692911), modified)
}

func TestMerge_IgnoresUnknownKeys(t *testing.T) {
	t.Parallel()

	company, err := prosperworks.NewEntity(prosperworks.CompanySchema).Merge(decodeObject(t, companyPayload))
	require.NoError(t, err)

	assert.Nil(t, company.Get("favorite_color"))
	assert.NotContains(t, company.Serialize(), "favorite_color")
}

func TestMerge_IsIdempotent(t *testing.T) {
	t.Parallel()

	data := decodeObject(t, companyPayload)

	once, err := prosperworks.NewEntity(prosperworks.CompanySchema).Merge(data)
	require.NoError(t, err)

	twice, err := prosperworks.NewEntity(prosperworks.CompanySchema).Merge(data)
	require.NoError(t, err)
	_, err = twice.Merge(data)
	require.NoError(t, err)

	assert.Equal(t, once.Serialize(), twice.Serialize())
}

func TestMerge_KeepsSetScalars(t *testing.T) {
	t.Parallel()

	company := prosperworks.NewEntity(prosperworks.CompanySchema)
	company.Set("name", "Local Name")

	_, err := company.Merge(map[string]any{"name": "Remote Name", "details": "remote"})
	require.NoError(t, err)

	assert.Equal(t, "Local Name", company.Text("name"))
	assert.Equal(t, "remote", company.Text("details"))
}

func TestMerge_DescendsIntoNested(t *testing.T) {
	t.Parallel()

	company := prosperworks.NewEntity(prosperworks.CompanySchema)
	company.Nested("address").Set("street", "1 Local Road")

	_, err := company.Merge(map[string]any{
		"address": map[string]any{"street": "2 Remote Road", "city": "Reno"},
	})
	require.NoError(t, err)

	assert.Equal(t, "1 Local Road", company.Nested("address").Text("street"))
	assert.Equal(t, "Reno", company.Nested("address").Text("city"))
}

func TestRefresh_OverwritesScalars(t *testing.T) {
	t.Parallel()

	company := prosperworks.NewEntity(prosperworks.CompanySchema)
	company.Set("name", "Old").Set("date_modified", json.Number("1"))

	_, err := company.Refresh(map[string]any{"name": "New", "date_modified": json.Number("2")})
	require.NoError(t, err)

	assert.Equal(t, "New", company.Text("name"))
	assert.Equal(t, "2", company.Text("date_modified"))
}

func TestMerge_ShapeMismatchLeavesEntityUntouched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		data  map[string]any
		field string
	}{
		{name: "nested not object", data: map[string]any{"address": "nowhere"}, field: "address"},
		{name: "list not array", data: map[string]any{"tags": "paper"}, field: "tags"},
		{name: "object list element", data: map[string]any{"phone_numbers": []any{"555"}}, field: "phone_numbers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			company, err := prosperworks.NewEntity(prosperworks.CompanySchema).Merge(decodeObject(t, companyPayload))
			require.NoError(t, err)

			before := company.Serialize()

			data := map[string]any{"details": "changed"}
			for k, v := range tt.data {
				data[k] = v
			}

			company.Set("details", nil)
			before["details"] = nil

			_, err = company.Merge(data)
			require.Error(t, err)

			var popErr *prosperworks.PopulateError
			require.True(t, errors.As(err, &popErr))
			assert.Equal(t, tt.field, popErr.Field)
			assert.ErrorIs(t, err, prosperworks.ErrApplication)
			assert.Equal(t, before, company.Serialize())
		})
	}
}

func TestNewEntity_FreshDefaults(t *testing.T) {
	t.Parallel()

	first := prosperworks.NewEntity(prosperworks.CompanySchema)
	second := prosperworks.NewEntity(prosperworks.CompanySchema)

	first.Nested("address").Set("city", "Reno")
	first.Values("tags").Append("vip")
	first.Objects("phone_numbers").Append(map[string]any{"number": "1"})

	assert.NotSame(t, first.Nested("address"), second.Nested("address"))
	assert.Nil(t, second.Nested("address").Get("city"))
	assert.Equal(t, 0, second.Values("tags").Len())
	assert.Equal(t, 0, second.Objects("phone_numbers").Len())
}

func TestMerge_NullListsBecomeEmpty(t *testing.T) {
	t.Parallel()

	company, err := prosperworks.NewEntity(prosperworks.CompanySchema).Merge(map[string]any{
		"tags":     nil,
		"websites": nil,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, company.Values("tags").Len())
	assert.Equal(t, 0, company.Objects("websites").Len())
}

func TestFromSimpleDict(t *testing.T) {
	t.Parallel()

	phone := prosperworks.FromSimpleDict(prosperworks.PhoneNumberSchema, map[string]any{
		"number":    "555-0100",
		"category":  "mobile",
		"extension": "12",
	})

	assert.Equal(t, "555-0100", phone.Text("number"))
	assert.Equal(t, "12", phone.Text("extension"))
}

func TestPopulate_FetchesWhenDataIsNil(t *testing.T) {
	t.Parallel()

	session := newFakeSession(func(method, path string, _ map[string]any) (any, error) {
		assert.Equal(t, http.MethodGet, method)
		assert.Equal(t, "companies/9607580", path)

		return decode(t, companyPayload), nil
	})

	company := prosperworks.NewEntity(prosperworks.CompanySchema).Bind(session)
	company.Set("id", json.Number("9607580"))

	_, err := prosperworks.Populate(context.Background(), company, nil)
	require.NoError(t, err)
	assert.Equal(t, "Dunder Mifflin", company.Text("name"))
	assert.Len(t, session.Calls(), 1)
}

func TestPopulate_WithoutSession(t *testing.T) {
	t.Parallel()

	_, err := prosperworks.Populate(context.Background(), prosperworks.NewEntity(prosperworks.CompanySchema), nil)
	require.ErrorIs(t, err, prosperworks.ErrNotConfigured)
}

func TestPopulateList_PreservesOrder(t *testing.T) {
	t.Parallel()

	items, ok := decode(t, `[{"id": 3, "name": "c"}, {"id": 1, "name": "a"}, {"id": 2, "name": "b"}]`).([]any)
	require.True(t, ok)

	users, err := prosperworks.PopulateList(context.Background(), nil, prosperworks.UserSchema, items)
	require.NoError(t, err)
	require.Len(t, users, 3)

	names := []string{users[0].Text("name"), users[1].Text("name"), users[2].Text("name")}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestPopulateList_FetchesBasePath(t *testing.T) {
	t.Parallel()

	session := newFakeSession(func(method, path string, _ map[string]any) (any, error) {
		assert.Equal(t, http.MethodGet, method)
		assert.Equal(t, "loss_reasons", path)

		return decode(t, `[{"id": 1, "name": "Price"}]`), nil
	})

	reasons, err := prosperworks.PopulateList(context.Background(), session, prosperworks.LossReasonSchema, nil)
	require.NoError(t, err)
	require.Len(t, reasons, 1)
	assert.Equal(t, "Price", reasons[0].Text("name"))
	assert.Same(t, session, reasons[0].Session())
}

func TestPopulateList_RejectsNonArray(t *testing.T) {
	t.Parallel()

	session := newFakeSession(func(string, string, map[string]any) (any, error) {
		return map[string]any{"message": "nope"}, nil
	})

	_, err := prosperworks.PopulateList(context.Background(), session, prosperworks.LossReasonSchema, nil)
	require.ErrorIs(t, err, prosperworks.ErrUnexpectedPayload)
}

func TestSerialize(t *testing.T) {
	t.Parallel()

	company, err := prosperworks.NewEntity(prosperworks.CompanySchema).Merge(decodeObject(t, companyPayload))
	require.NoError(t, err)

	out := company.Serialize()
	assert.Contains(t, out, "assignee_id")
	assert.Nil(t, out["assignee_id"])
	assert.NotContains(t, out, "assignee")
	assert.NotContains(t, out, "contact_type")

	address, ok := out["address"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Reno", address["city"])

	phones, ok := out["phone_numbers"].([]map[string]any)
	require.True(t, ok)
	assert.Equal(t, "work", phones[0]["category"])

	restricted := company.Serialize("name", "contact_type", "tags")
	assert.Equal(t, map[string]any{
		"name": "Dunder Mifflin",
		"tags": []any{"paper", "scranton"},
	}, restricted)
}

func TestGoString(t *testing.T) {
	t.Parallel()

	user := prosperworks.NewEntity(prosperworks.UserSchema)
	user.Set("id", 7).Set("name", "Pam")

	assert.Equal(t, "<User: id=7, name=Pam>", user.GoString())
}
