package prosperworks

import (
	"context"
	"fmt"
)

// Account is the ProsperWorks account the credentials belong to.
type Account struct{ *Entity }

// Name returns the account name.
func (a *Account) Name() string { return a.Text("name") }

// Company is a ProsperWorks company record.
type Company struct{ *Entity }

// Name returns the company name.
func (c *Company) Name() string { return c.Text("name") }

// Address returns the nested address.
func (c *Company) Address() *Entity { return c.Nested("address") }

// EmailDomain returns the company email domain.
func (c *Company) EmailDomain() string { return c.Text("email_domain") }

// PhoneNumbers returns the phone numbers.
func (c *Company) PhoneNumbers() *ObjectList { return c.Objects("phone_numbers") }

// Websites returns the websites.
func (c *Company) Websites() *ObjectList { return c.Objects("websites") }

// Tags returns the tags.
func (c *Company) Tags() []string { return c.Values("tags").Strings() }

// Assignee resolves the assigned user.
func (c *Company) Assignee(ctx context.Context) (*User, error) {
	return related(ctx, c.Entity, "assignee", WrapUser)
}

// ContactType resolves the contact type from reference data.
func (c *Company) ContactType(ctx context.Context) (*ContactType, error) {
	return related(ctx, c.Entity, "contact_type", WrapContactType)
}

// Person is a ProsperWorks person (contact).
type Person struct{ *Entity }

// Name returns the full name.
func (p *Person) Name() string { return p.Text("name") }

// Title returns the job title.
func (p *Person) Title() string { return p.Text("title") }

// Address returns the nested address.
func (p *Person) Address() *Entity { return p.Nested("address") }

// Emails returns the email addresses.
func (p *Person) Emails() *ObjectList { return p.Objects("emails") }

// PhoneNumbers returns the phone numbers.
func (p *Person) PhoneNumbers() *ObjectList { return p.Objects("phone_numbers") }

// Tags returns the tags.
func (p *Person) Tags() []string { return p.Values("tags").Strings() }

// Assignee resolves the assigned user.
func (p *Person) Assignee(ctx context.Context) (*User, error) {
	return related(ctx, p.Entity, "assignee", WrapUser)
}

// Company resolves the company the person works for.
func (p *Person) Company(ctx context.Context) (*Company, error) {
	return related(ctx, p.Entity, "company", WrapCompany)
}

// ContactType resolves the contact type from reference data.
func (p *Person) ContactType(ctx context.Context) (*ContactType, error) {
	return related(ctx, p.Entity, "contact_type", WrapContactType)
}

// Lead is a ProsperWorks lead.
type Lead struct{ *Entity }

// Name returns the lead name.
func (l *Lead) Name() string { return l.Text("name") }

// Status returns the lead status.
func (l *Lead) Status() string { return l.Text("status") }

// Email returns the nested email address.
func (l *Lead) Email() *Entity { return l.Nested("email") }

// Address returns the nested address.
func (l *Lead) Address() *Entity { return l.Nested("address") }

// Tags returns the tags.
func (l *Lead) Tags() []string { return l.Values("tags").Strings() }

// Assignee resolves the assigned user.
func (l *Lead) Assignee(ctx context.Context) (*User, error) {
	return related(ctx, l.Entity, "assignee", WrapUser)
}

// CustomerSource resolves the customer source from reference data.
func (l *Lead) CustomerSource(ctx context.Context) (*CustomerSource, error) {
	return related(ctx, l.Entity, "customer_source", WrapCustomerSource)
}

// LeadConversion holds the records created by converting a lead. Company and
// Opportunity are nil when the server did not create them.
type LeadConversion struct {
	Person      *Person
	Company     *Company
	Opportunity *Opportunity
}

// NewLeadConversion builds a conversion result from a decoded response.
func NewLeadConversion(s Session, data map[string]any) (*LeadConversion, error) {
	conversion := &LeadConversion{}

	for key, schema := range map[string]*Schema{
		"person":      PersonSchema,
		"company":     CompanySchema,
		"opportunity": OpportunitySchema,
	} {
		raw, ok := data[key]
		if !ok || raw == nil {
			continue
		}

		obj, err := asObject(raw)
		if err != nil {
			return nil, fmt.Errorf("lead conversion %s: %w", key, err)
		}

		e, err := NewEntity(schema).Bind(s).Merge(obj)
		if err != nil {
			return nil, err
		}

		switch key {
		case "person":
			conversion.Person = WrapPerson(e)
		case "company":
			conversion.Company = WrapCompany(e)
		case "opportunity":
			conversion.Opportunity = WrapOpportunity(e)
		}
	}

	return conversion, nil
}

// Opportunity is a ProsperWorks opportunity.
type Opportunity struct{ *Entity }

// Name returns the opportunity name.
func (o *Opportunity) Name() string { return o.Text("name") }

// Status returns the opportunity status.
func (o *Opportunity) Status() string { return o.Text("status") }

// MonetaryValue returns the monetary value and whether it is set.
func (o *Opportunity) MonetaryValue() (float64, bool) { return o.Float64("monetary_value") }

// Assignee resolves the assigned user.
func (o *Opportunity) Assignee(ctx context.Context) (*User, error) {
	return related(ctx, o.Entity, "assignee", WrapUser)
}

// Company resolves the linked company.
func (o *Opportunity) Company(ctx context.Context) (*Company, error) {
	return related(ctx, o.Entity, "company", WrapCompany)
}

// PrimaryContact resolves the primary contact person.
func (o *Opportunity) PrimaryContact(ctx context.Context) (*Person, error) {
	return related(ctx, o.Entity, "primary_contact", WrapPerson)
}

// CustomerSource resolves the customer source from reference data.
func (o *Opportunity) CustomerSource(ctx context.Context) (*CustomerSource, error) {
	return related(ctx, o.Entity, "customer_source", WrapCustomerSource)
}

// LossReason resolves the loss reason from reference data.
func (o *Opportunity) LossReason(ctx context.Context) (*LossReason, error) {
	return related(ctx, o.Entity, "loss_reason", WrapLossReason)
}

// Pipeline resolves the pipeline from reference data.
func (o *Opportunity) Pipeline(ctx context.Context) (*Pipeline, error) {
	return related(ctx, o.Entity, "pipeline", WrapPipeline)
}

// PipelineStage resolves the pipeline stage from reference data.
func (o *Opportunity) PipelineStage(ctx context.Context) (*PipelineStage, error) {
	return related(ctx, o.Entity, "pipeline_stage", WrapPipelineStage)
}

// Task is a ProsperWorks task.
type Task struct{ *Entity }

// Name returns the task name.
func (t *Task) Name() string { return t.Text("name") }

// Status returns the task status.
func (t *Task) Status() string { return t.Text("status") }

// RelatedResource returns the record the task is attached to.
func (t *Task) RelatedResource() *Entity { return t.Nested("related_resource") }

// Assignee resolves the assigned user.
func (t *Task) Assignee(ctx context.Context) (*User, error) {
	return related(ctx, t.Entity, "assignee", WrapUser)
}

// Project is a ProsperWorks project.
type Project struct{ *Entity }

// Name returns the project name.
func (p *Project) Name() string { return p.Text("name") }

// Status returns the project status.
func (p *Project) Status() string { return p.Text("status") }

// Assignee resolves the assigned user.
func (p *Project) Assignee(ctx context.Context) (*User, error) {
	return related(ctx, p.Entity, "assignee", WrapUser)
}

// User is a ProsperWorks user.
type User struct{ *Entity }

// Name returns the user name.
func (u *User) Name() string { return u.Text("name") }

// Email returns the user email.
func (u *User) Email() string { return u.Text("email") }

// CustomerSource is a reference entry naming where a customer came from.
type CustomerSource struct{ *Entity }

// Name returns the source name.
func (c *CustomerSource) Name() string { return c.Text("name") }

// LossReason is a reference entry explaining a lost opportunity.
type LossReason struct{ *Entity }

// Name returns the reason name.
func (l *LossReason) Name() string { return l.Text("name") }

// Pipeline is a sales pipeline.
type Pipeline struct{ *Entity }

// Name returns the pipeline name.
func (p *Pipeline) Name() string { return p.Text("name") }

// Stages returns the pipeline's stages as embedded in the pipeline payload.
func (p *Pipeline) Stages() *ObjectList { return p.Objects("stages") }

// PipelineStage is one stage of a pipeline.
type PipelineStage struct{ *Entity }

// Name returns the stage name.
func (p *PipelineStage) Name() string { return p.Text("name") }

// Pipeline resolves the owning pipeline from reference data.
func (p *PipelineStage) Pipeline(ctx context.Context) (*Pipeline, error) {
	return related(ctx, p.Entity, "pipeline", WrapPipeline)
}

// ContactType is a reference entry classifying people and companies.
type ContactType struct{ *Entity }

// Name returns the contact type name.
func (c *ContactType) Name() string { return c.Text("name") }

// Wrappers turning engine entities into typed resources.

func WrapAccount(e *Entity) *Account               { return &Account{e} }
func WrapCompany(e *Entity) *Company               { return &Company{e} }
func WrapPerson(e *Entity) *Person                 { return &Person{e} }
func WrapLead(e *Entity) *Lead                     { return &Lead{e} }
func WrapOpportunity(e *Entity) *Opportunity       { return &Opportunity{e} }
func WrapTask(e *Entity) *Task                     { return &Task{e} }
func WrapProject(e *Entity) *Project               { return &Project{e} }
func WrapUser(e *Entity) *User                     { return &User{e} }
func WrapCustomerSource(e *Entity) *CustomerSource { return &CustomerSource{e} }
func WrapLossReason(e *Entity) *LossReason         { return &LossReason{e} }
func WrapPipeline(e *Entity) *Pipeline             { return &Pipeline{e} }
func WrapPipelineStage(e *Entity) *PipelineStage   { return &PipelineStage{e} }
func WrapContactType(e *Entity) *ContactType       { return &ContactType{e} }
