package repository

import (
	"strings"
	"testing"
)

func TestGetProductQueryIsOwnerScoped(t *testing.T) {
	query := strings.ToLower(getProductQuery)

	requiredFragments := []string{
		"from products",
		"where id = $1 and owner_id = $2",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected owner-scoped query fragment %q to be present", fragment)
		}
	}
}

func TestListProductsQueryIsOwnerScoped(t *testing.T) {
	query := strings.ToLower(listProductsQuery)

	if !strings.Contains(query, "where owner_id = $1") {
		t.Fatal("product listing must be filtered by owner")
	}
}
