package apollo

// Person is the person object returned by the people/match and
// people/enrich endpoints. Only the fields the extractor reads are
// mapped; the API returns far more.
type Person struct {
	ID           string        `json:"id"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Title        string        `json:"title"`
	LinkedInURL  string        `json:"linkedin_url"`
	Organization *Organization `json:"organization"`
	Emails       []Email       `json:"emails"`
	PhoneNumbers []PhoneNumber `json:"phone_numbers"`
}

// Organization is the employer object nested in a Person.
type Organization struct {
	Name       string `json:"name"`
	WebsiteURL string `json:"website_url"`
	Industry   string `json:"industry"`
}

// Email is one email entry on a Person, carrying the provider's
// verification status and address type.
type Email struct {
	Email  string `json:"email"`
	Status string `json:"status"`
	Type   string `json:"type"`
}

// PhoneNumber is one phone entry on a Person. SanitizedNumber is the
// provider's normalized form and is preferred over the raw Number.
type PhoneNumber struct {
	Number          string `json:"number"`
	SanitizedNumber string `json:"sanitized_number"`
	Status          string `json:"status"`
	Label           string `json:"label"`
}

// EnrichRequest is the request body for POST /people/enrich. Empty
// identifying fields are omitted so the provider matches on whatever
// is present. RevealPhoneNumber is forced on by the client; every
// enrich call asks for phone data.
type EnrichRequest struct {
	LinkedInURL       string `json:"linkedin_url,omitempty"`
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	OrganizationName  string `json:"organization_name,omitempty"`
	RevealPhoneNumber bool   `json:"reveal_phone_number"`
}

// matchRequest is the request body for POST /people/match.
type matchRequest struct {
	Person matchParams `json:"person"`
}

type matchParams struct {
	LinkedInURL string `json:"linkedin_url"`
}

// personResponse is the envelope both people endpoints use. A response
// without a person means the provider had no data.
type personResponse struct {
	Person *Person `json:"person"`
}
