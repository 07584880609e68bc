package repository

import (
	"strings"
	"testing"
)

func TestBuildSummaryQueryDefaultsToCatalogueOrder(t *testing.T) {
	query := BuildSummaryQuery(Filter{})
	if strings.Contains(query, "WHERE") {
		t.Fatalf("expected no WHERE clause for empty filter: %s", query)
	}
	if !strings.HasSuffix(strings.TrimSpace(query), "ORDER BY "+DefaultOrder) {
		t.Fatalf("expected default ordering: %s", query)
	}
}

func TestBuildSummaryQueryJoinsClausesWithAnd(t *testing.T) {
	query := BuildSummaryQuery(Filter{
		Where:   []string{"l.status = $1", "l.type = $2"},
		OrderBy: "l.created_at DESC",
		Limit:   6,
	})

	for _, fragment := range []string{
		"WHERE l.status = $1",
		"AND l.type = $2",
		"ORDER BY l.created_at DESC",
		"LIMIT 6",
	} {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected fragment %q in query: %s", fragment, query)
		}
	}
}

func TestPricingUpsertsStoreCentsAsNumeric(t *testing.T) {
	for _, q := range []string{upsertSalePricingQuery, upsertLeasePricingQuery} {
		if !strings.Contains(q, "$3::numeric / 100") {
			t.Fatalf("expected cents conversion in %s", q)
		}
		if !strings.Contains(strings.ToLower(q), "on conflict (listing_id) do update") {
			t.Fatalf("expected upsert semantics in %s", q)
		}
	}
}

func TestStatusUpdateIsConditional(t *testing.T) {
	if !strings.Contains(updateStatusQuery, "WHERE id = $1 AND status = $2") {
		t.Fatalf("expected compare-and-set on status: %s", updateStatusQuery)
	}
}
