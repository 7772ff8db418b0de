package lookup

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aggarwalkavyanew-dev/apollo-contact-extractor/pkg/apollo"
)

type mockApolloClient struct {
	mock.Mock
}

func (m *mockApolloClient) MatchPerson(ctx context.Context, linkedinURL string) (*apollo.Person, error) {
	args := m.Called(ctx, linkedinURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apollo.Person), args.Error(1)
}

func (m *mockApolloClient) EnrichPerson(ctx context.Context, req apollo.EnrichRequest) (*apollo.Person, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apollo.Person), args.Error(1)
}

var _ apollo.Client = (*mockApolloClient)(nil)
