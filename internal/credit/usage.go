// Package credit tracks Apollo call counts and credit consumption for a
// batch run. The counters are the extractor's own accounting of what it
// asked the provider for, independent of provider-side billing.
package credit

import "go.uber.org/zap"

// Usage accumulates call and credit counters for one batch run. A batch
// processes records strictly one at a time, so Usage carries no locking.
type Usage struct {
	matchCalls        int
	enrichCalls       int
	emailCreditsUsed  int
	mobileCreditsUsed int
}

// NewUsage creates an empty Usage.
func NewUsage() *Usage {
	return &Usage{}
}

// AddMatchCall records one issued match query, successful or not.
func (u *Usage) AddMatchCall() {
	u.matchCalls++
}

// AddEnrichCall records one issued enrich query, successful or not.
func (u *Usage) AddEnrichCall() {
	u.enrichCalls++
}

// AddEmailCredit records one verified email confirmed for a record.
// Callers count at most one per record, at the step that first
// confirmed the value.
func (u *Usage) AddEmailCredit() {
	u.emailCreditsUsed++
}

// AddMobileCredit records one verified mobile number confirmed for a
// record, under the same once-per-record rule as AddEmailCredit.
func (u *Usage) AddMobileCredit() {
	u.mobileCreditsUsed++
}

// MatchCalls returns the number of match queries issued.
func (u *Usage) MatchCalls() int {
	return u.matchCalls
}

// EnrichCalls returns the number of enrich queries issued.
func (u *Usage) EnrichCalls() int {
	return u.enrichCalls
}

// EmailCreditsUsed returns the number of records that confirmed a
// verified email.
func (u *Usage) EmailCreditsUsed() int {
	return u.emailCreditsUsed
}

// MobileCreditsUsed returns the number of records that confirmed a
// verified mobile number.
func (u *Usage) MobileCreditsUsed() int {
	return u.mobileCreditsUsed
}

// Fields renders the counters as zap fields for the end-of-run summary.
func (u *Usage) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("match_calls", u.matchCalls),
		zap.Int("enrich_calls", u.enrichCalls),
		zap.Int("email_credits_used", u.emailCreditsUsed),
		zap.Int("mobile_credits_used", u.mobileCreditsUsed),
	}
}
