package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/internal/credit"
	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/internal/lookup"
	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/internal/model"
	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/pkg/apollo"
)

// TestBatchEndToEnd runs a batch through the real client, engine, and
// processor against a stub Apollo server, then round-trips the output
// through the CSV exporter. Three profiles cover the interesting paths:
// a verified mobile straight from match, a mobile that needs enrich,
// and a provider failure.
func TestBatchEndToEnd(t *testing.T) {
	t.Parallel()

	const (
		urlA = "https://linkedin.com/in/a"
		urlB = "https://linkedin.com/in/b"
		urlC = "https://linkedin.com/in/c"
	)

	var matchCalls, enrichCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/people/match" {
			enrichCalls.Add(1)
			_, _ = w.Write([]byte(`{"person":{"id":"p_b",
				"phone_numbers":[{"sanitized_number":"+15550002","status":"verified","label":"mobile"}]}}`))
			return
		}

		matchCalls.Add(1)
		var body struct {
			Person struct {
				LinkedInURL string `json:"linkedin_url"`
			} `json:"person"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch body.Person.LinkedInURL {
		case urlA:
			_, _ = w.Write([]byte(`{"person":{"id":"p_a","first_name":"Ann","last_name":"Ames","title":"CTO",
				"linkedin_url":"https://www.linkedin.com/in/a",
				"organization":{"name":"Aster","website_url":"https://aster.io","industry":"software"},
				"phone_numbers":[{"sanitized_number":"+15550001","status":"verified","label":"mobile"}]}}`))
		case urlB:
			_, _ = w.Write([]byte(`{"person":{"id":"p_b","first_name":"Bea","last_name":"Bloom",
				"linkedin_url":"https://www.linkedin.com/in/b",
				"emails":[{"email":"bea@bloom.co","status":"verified","type":"work"}]}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"boom"}`))
		}
	}))
	defer srv.Close()

	input := writeTempCSV(t, "linkedin_url\n"+urlA+"\n"+urlB+"\n"+urlC+"\n")
	ids, err := ReadIdentifiers(input, "linkedin_url")
	require.NoError(t, err)
	require.Len(t, ids, 3)

	client := apollo.NewClient("test-key",
		apollo.WithBaseURL(srv.URL),
		apollo.WithRateLimitDelay(0),
	)
	usage := credit.NewUsage()
	engine := lookup.NewEngine(client, apollo.DefaultVerificationPolicy(), usage)

	records, err := NewProcessor(engine, usage).Run(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Match alone produced the mobile; enrich never ran for this row.
	a := records[0]
	assert.Equal(t, urlA, a.InputLinkedInURL)
	assert.Equal(t, "Ann", a.FirstName)
	assert.Equal(t, "Aster", a.CompanyName)
	assert.Equal(t, "+15550001", a.VerifiedMobilePhone)
	assert.Empty(t, a.VerifiedEmail)
	assert.Equal(t, model.LookupMatch, a.LookupUsed)
	assert.Empty(t, a.ApolloError)

	// Email came from match, mobile from enrich; the merged record
	// carries both and is attributed to enrich.
	b := records[1]
	assert.Equal(t, urlB, b.InputLinkedInURL)
	assert.Equal(t, "Bea", b.FirstName)
	assert.Equal(t, "bea@bloom.co", b.VerifiedEmail)
	assert.Equal(t, "+15550002", b.VerifiedMobilePhone)
	assert.Equal(t, "https://www.linkedin.com/in/b", b.LinkedInURL)
	assert.Equal(t, model.LookupEnrich, b.LookupUsed)
	assert.Empty(t, b.ApolloError)

	// The failed row keeps its slot with the error recorded.
	c := records[2]
	assert.Equal(t, urlC, c.InputLinkedInURL)
	assert.Empty(t, c.FirstName)
	assert.Equal(t, model.LookupNone, c.LookupUsed)
	assert.Contains(t, c.ApolloError, "unexpected status 500")

	assert.Equal(t, int32(3), matchCalls.Load())
	assert.Equal(t, int32(1), enrichCalls.Load())

	// Failed match still counts as an issued call; credits are charged
	// at the step that first confirmed each value.
	assert.Equal(t, 3, usage.MatchCalls())
	assert.Equal(t, 1, usage.EnrichCalls())
	assert.Equal(t, 1, usage.EmailCreditsUsed())
	assert.Equal(t, 2, usage.MobileCreditsUsed())

	output := filepath.Join(t.TempDir(), "contacts.csv")
	require.NoError(t, WriteRecords(output, FormatCSV, records))
	got, err := ReadRecordsCSV(output)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
