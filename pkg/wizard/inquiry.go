package wizard

import "github.com/pfjetdev/pfgrouptravel/pkg/client"

// InquiryDetails is step one of the contact form
type InquiryDetails struct {
	InquiryType string
	GroupSize   string
	Message     string
}

// ContactWizard collects a general inquiry
type ContactWizard struct {
	flow
	inquiry InquiryDetails
	contact ContactInfo
}

// NewContactWizard creates a contact wizard
func NewContactWizard(submitter Submitter) *ContactWizard {
	w := &ContactWizard{}
	w.init(submitter, w)
	return w
}

func (w *ContactWizard) clear() {
	w.inquiry = InquiryDetails{}
	w.contact = ContactInfo{}
}

func (w *ContactWizard) detailsComplete() bool {
	return present(w.inquiry.InquiryType) && present(w.inquiry.Message)
}

func (w *ContactWizard) contactComplete() bool {
	return w.contact.splitComplete()
}

func (w *ContactWizard) payload() (string, interface{}, error) {
	return client.EndpointContact, client.ContactPayload{
		FirstName:   w.contact.FirstName,
		LastName:    w.contact.LastName,
		Email:       w.contact.Email,
		Phone:       w.contact.Phone.String(),
		InquiryType: w.inquiry.InquiryType,
		GroupSize:   client.StringOrNil(w.inquiry.GroupSize),
		Message:     w.inquiry.Message,
	}, nil
}

// SetInquiry replaces the inquiry fields
func (w *ContactWizard) SetInquiry(d InquiryDetails) { w.edit(func() { w.inquiry = d }) }

// SetContact replaces the contact details
func (w *ContactWizard) SetContact(c ContactInfo) { w.edit(func() { w.contact = c }) }

// CompanyDetails is step one of the enterprise form
type CompanyDetails struct {
	CompanyName        string
	IndustryType       string
	AnnualTravelBudget string
	NumberOfEmployees  string
	Message            string
}

// EnterpriseWizard collects a corporate travel inquiry
type EnterpriseWizard struct {
	flow
	company CompanyDetails
	contact ContactInfo
}

// NewEnterpriseWizard creates an enterprise wizard
func NewEnterpriseWizard(submitter Submitter) *EnterpriseWizard {
	w := &EnterpriseWizard{}
	w.init(submitter, w)
	return w
}

func (w *EnterpriseWizard) clear() {
	w.company = CompanyDetails{}
	w.contact = ContactInfo{}
}

func (w *EnterpriseWizard) detailsComplete() bool {
	return present(w.company.CompanyName) && present(w.company.IndustryType) && present(w.company.Message)
}

func (w *EnterpriseWizard) contactComplete() bool {
	return w.contact.fullComplete()
}

func (w *EnterpriseWizard) payload() (string, interface{}, error) {
	return client.EndpointEnterprise, client.EnterprisePayload{
		CompanyName:        w.company.CompanyName,
		ContactName:        w.contact.FullName,
		Email:              w.contact.Email,
		Phone:              w.contact.Phone.String(),
		IndustryType:       w.company.IndustryType,
		AnnualTravelBudget: client.StringOrNil(w.company.AnnualTravelBudget),
		NumberOfEmployees:  client.StringOrNil(w.company.NumberOfEmployees),
		Message:            w.company.Message,
	}, nil
}

// SetCompany replaces the company fields
func (w *EnterpriseWizard) SetCompany(d CompanyDetails) { w.edit(func() { w.company = d }) }

// SetContact replaces the contact details
func (w *EnterpriseWizard) SetContact(c ContactInfo) { w.edit(func() { w.contact = c }) }
