package repository

import (
	"strings"
	"testing"
)

// Every read and write path must filter on owner_id so one user can never
// observe or touch another user's quotes.
func TestQuoteQueriesAreOwnerScoped(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"get by id", getQuoteQuery, "WHERE id = $1 AND owner_id = $2"},
		{"list", listQuotesQuery, "WHERE owner_id = $1"},
		{"items", getQuoteItemsQuery, "q.owner_id = $2"},
		{"resolved items", getResolvedItemsQuery, "q.owner_id = $2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.query, tt.want) {
				t.Fatalf("query %q is missing owner scoping %q", tt.query, tt.want)
			}
		})
	}
}

func TestPublicTokenQueryHasNoOwnerScope(t *testing.T) {
	if strings.Contains(getQuoteByTokenQuery, "owner_id") {
		t.Fatalf("public token lookup must not require an owner: %q", getQuoteByTokenQuery)
	}
	if !strings.Contains(getQuoteByTokenQuery, "WHERE public_token = $1") {
		t.Fatalf("public token lookup must filter on the token: %q", getQuoteByTokenQuery)
	}
}
