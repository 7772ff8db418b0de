// Package lookup resolves LinkedIn profile URLs into contact records
// using a two-step Apollo strategy: a cheap match first, then a full
// enrich only when the match did not already surface a verified mobile
// number.
package lookup

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/internal/credit"
	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/internal/model"
	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/pkg/apollo"
)

// Engine runs the two-step lookup for single profile URLs and charges
// calls and credits to the shared usage tracker as it goes.
type Engine struct {
	client apollo.Client
	policy apollo.VerificationPolicy
	usage  *credit.Usage
}

// NewEngine creates an Engine. All lookups share the given usage tracker.
func NewEngine(client apollo.Client, policy apollo.VerificationPolicy, usage *credit.Usage) *Engine {
	return &Engine{
		client: client,
		policy: policy,
		usage:  usage,
	}
}

// Lookup resolves one profile URL into a contact record. It never
// returns an error; lookup failures land in the record's ApolloError
// field so a batch can keep going.
func (e *Engine) Lookup(ctx context.Context, linkedinURL string) model.ContactRecord {
	rec := model.ContactRecord{
		InputLinkedInURL: linkedinURL,
		LookupUsed:       model.LookupNone,
	}

	if strings.TrimSpace(linkedinURL) == "" {
		rec.ApolloError = "empty linkedin url"
		return rec
	}

	log := zap.L().With(zap.String("linkedin_url", linkedinURL))

	// Step 1: match by profile URL.
	e.usage.AddMatchCall()
	matched, err := e.client.MatchPerson(ctx, linkedinURL)
	if err != nil {
		log.Warn("lookup: match failed", zap.Error(err))
		rec.ApolloError = fmt.Sprintf("match: %v", err)
		return rec
	}
	if matched == nil {
		log.Debug("lookup: no match")
		rec.ApolloError = "no match found"
		return rec
	}

	matchRec := e.recordFrom(matched)
	if matchRec.VerifiedEmail != "" {
		e.usage.AddEmailCredit()
	}
	if matchRec.VerifiedMobilePhone != "" {
		e.usage.AddMobileCredit()
	}
	matchRec.InputLinkedInURL = linkedinURL
	matchRec.LookupUsed = model.LookupMatch

	// Step 2: a verified mobile from match ends the lookup; enrich is
	// never called for this record.
	if matchRec.VerifiedMobilePhone != "" {
		log.Debug("lookup: verified mobile from match, skipping enrich")
		return matchRec
	}

	// Step 3: enrich with the identifying details match gave us.
	e.usage.AddEnrichCall()
	enriched, err := e.client.EnrichPerson(ctx, enrichRequestFrom(matched))
	if err != nil {
		log.Warn("lookup: enrich failed", zap.Error(err))
		matchRec.ApolloError = fmt.Sprintf("enrich: %v", err)
		return matchRec
	}
	if enriched == nil {
		log.Debug("lookup: no enrichment data")
		matchRec.ApolloError = "no enrichment data returned"
		return matchRec
	}

	enrichRec := e.recordFrom(enriched)

	// Credits are charged once per record, at the step that first
	// confirmed the value.
	if matchRec.VerifiedEmail == "" && enrichRec.VerifiedEmail != "" {
		e.usage.AddEmailCredit()
	}
	if enrichRec.VerifiedMobilePhone != "" {
		e.usage.AddMobileCredit()
	}

	final := mergeRecords(enrichRec, matchRec)
	final.InputLinkedInURL = linkedinURL
	final.LookupUsed = model.LookupMatch
	if enrichRec.VerifiedEmail != "" || enrichRec.VerifiedMobilePhone != "" {
		final.LookupUsed = model.LookupEnrich
	}
	return final
}

// recordFrom extracts the output fields from a person using the
// engine's verification policy. Input URL, lookup path, and error are
// left for the caller.
func (e *Engine) recordFrom(p *apollo.Person) model.ContactRecord {
	rec := model.ContactRecord{
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		JobTitle:            p.Title,
		LinkedInURL:         p.LinkedInURL,
		ApolloPersonID:      p.ID,
		VerifiedEmail:       e.policy.VerifiedEmail(p),
		VerifiedMobilePhone: e.policy.VerifiedMobile(p),
	}
	if p.Organization != nil {
		rec.CompanyName = p.Organization.Name
		rec.CompanyWebsite = p.Organization.WebsiteURL
		rec.Industry = p.Organization.Industry
	}
	return rec
}

// enrichRequestFrom builds an enrich query from whatever identifying
// details the matched person carries.
func enrichRequestFrom(p *apollo.Person) apollo.EnrichRequest {
	req := apollo.EnrichRequest{
		LinkedInURL: p.LinkedInURL,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
	}
	if p.Organization != nil {
		req.OrganizationName = p.Organization.Name
	}
	return req
}

// mergeRecords combines two extracted records field by field, taking
// the enrich value when non-empty and falling back to match otherwise.
func mergeRecords(enrich, match model.ContactRecord) model.ContactRecord {
	return model.ContactRecord{
		FirstName:           prefer(enrich.FirstName, match.FirstName),
		LastName:            prefer(enrich.LastName, match.LastName),
		JobTitle:            prefer(enrich.JobTitle, match.JobTitle),
		CompanyName:         prefer(enrich.CompanyName, match.CompanyName),
		CompanyWebsite:      prefer(enrich.CompanyWebsite, match.CompanyWebsite),
		Industry:            prefer(enrich.Industry, match.Industry),
		VerifiedEmail:       prefer(enrich.VerifiedEmail, match.VerifiedEmail),
		VerifiedMobilePhone: prefer(enrich.VerifiedMobilePhone, match.VerifiedMobilePhone),
		LinkedInURL:         prefer(enrich.LinkedInURL, match.LinkedInURL),
		ApolloPersonID:      prefer(enrich.ApolloPersonID, match.ApolloPersonID),
	}
}

func prefer(enrich, match string) string {
	if enrich != "" {
		return enrich
	}
	return match
}
