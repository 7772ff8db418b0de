package model

// LookupPath records which Apollo endpoint supplied a record's contact data.
type LookupPath string

const (
	// LookupMatch means the match endpoint supplied everything used.
	LookupMatch LookupPath = "match"
	// LookupEnrich means the enrich endpoint contributed a verified value.
	LookupEnrich LookupPath = "enrich"
	// LookupNone means no endpoint returned usable data.
	LookupNone LookupPath = "none"
)

// ContactRecord is one output row of a batch run. Every input row produces
// exactly one record, lookup failures included.
type ContactRecord struct {
	InputLinkedInURL    string     `json:"input_linkedin_url"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	JobTitle            string     `json:"job_title"`
	CompanyName         string     `json:"company_name"`
	CompanyWebsite      string     `json:"company_website"`
	Industry            string     `json:"industry"`
	VerifiedEmail       string     `json:"verified_email"`
	VerifiedMobilePhone string     `json:"verified_mobile_phone"`
	LinkedInURL         string     `json:"linkedin_url"`
	ApolloPersonID      string     `json:"apollo_person_id"`
	LookupUsed          LookupPath `json:"lookup_used"`
	ApolloError         string     `json:"apollo_error"`
}

// OutputColumns is the column order for tabular exports. It matches the
// ContactRecord json tags one to one.
var OutputColumns = []string{
	"input_linkedin_url",
	"first_name",
	"last_name",
	"job_title",
	"company_name",
	"company_website",
	"industry",
	"verified_email",
	"verified_mobile_phone",
	"linkedin_url",
	"apollo_person_id",
	"lookup_used",
	"apollo_error",
}

// Row renders the record as a slice in OutputColumns order.
func (r ContactRecord) Row() []string {
	return []string{
		r.InputLinkedInURL,
		r.FirstName,
		r.LastName,
		r.JobTitle,
		r.CompanyName,
		r.CompanyWebsite,
		r.Industry,
		r.VerifiedEmail,
		r.VerifiedMobilePhone,
		r.LinkedInURL,
		r.ApolloPersonID,
		string(r.LookupUsed),
		r.ApolloError,
	}
}

// RecordFromRow parses a row in OutputColumns order back into a record.
// Short rows are tolerated; missing trailing fields stay empty.
func RecordFromRow(row []string) ContactRecord {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	rec := ContactRecord{
		InputLinkedInURL:    get(0),
		FirstName:           get(1),
		LastName:            get(2),
		JobTitle:            get(3),
		CompanyName:         get(4),
		CompanyWebsite:      get(5),
		Industry:            get(6),
		VerifiedEmail:       get(7),
		VerifiedMobilePhone: get(8),
		LinkedInURL:         get(9),
		ApolloPersonID:      get(10),
		LookupUsed:          LookupPath(get(11)),
		ApolloError:         get(12),
	}
	if rec.LookupUsed == "" {
		rec.LookupUsed = LookupNone
	}
	return rec
}
