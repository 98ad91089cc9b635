package profile

import "testing"

func catalog() []Professional {
	return []Professional{
		{Email: "wanjiku@example.com", Service: "Plumber", Location: "Nairobi", Rating: 4.8, Price: "100-300"},
		{Email: "otieno@example.com", Service: "Cleaner", Location: "Mombasa", Rating: 4.2, Price: "0-50"},
		{Email: "kamau@example.com", Service: "Plumber", Location: "Nairobi", Rating: 3.9, Price: "300-500"},
		{Email: "akinyi@example.com", Service: "Electrician", Location: "Kisumu", Rating: 5.0, Price: "500+"},
	}
}

func emails(pros []Professional) []string {
	out := make([]string, len(pros))
	for i, p := range pros {
		out[i] = p.Email
	}
	return out
}

func TestAllFiltersDisabledReturnsEverything(t *testing.T) {
	f := Filter{Service: "All", Location: "All", MinRating: "All", Price: "All"}
	got := f.Apply(catalog())
	if len(got) != 4 {
		t.Fatalf("got %d professionals, want 4", len(got))
	}
	for i, email := range emails(got) {
		if email != catalog()[i].Email {
			t.Fatalf("order changed: %v", emails(got))
		}
	}
}

func TestZeroFilterEqualsAll(t *testing.T) {
	got := Filter{}.Apply(catalog())
	if len(got) != 4 {
		t.Fatalf("got %d professionals, want 4", len(got))
	}
}

func TestServiceFilter(t *testing.T) {
	got := Filter{Service: "Plumber"}.Apply(catalog())
	if len(got) != 2 || got[0].Email != "wanjiku@example.com" || got[1].Email != "kamau@example.com" {
		t.Fatalf("got %v", emails(got))
	}
}

func TestLocationFilter(t *testing.T) {
	got := Filter{Location: "Mombasa"}.Apply(catalog())
	if len(got) != 1 || got[0].Email != "otieno@example.com" {
		t.Fatalf("got %v", emails(got))
	}
}

func TestMinRatingFilter(t *testing.T) {
	got := Filter{MinRating: "4.5+"}.Apply(catalog())
	if len(got) != 2 || got[0].Email != "wanjiku@example.com" || got[1].Email != "akinyi@example.com" {
		t.Fatalf("got %v", emails(got))
	}
}

func TestMinRatingIncludesExactThreshold(t *testing.T) {
	got := Filter{MinRating: "4.8+"}.Apply(catalog())
	if len(got) != 2 {
		t.Fatalf("got %v, want 4.8 to match 4.8+", emails(got))
	}
}

func TestExactPriceBucket(t *testing.T) {
	got := Filter{Price: "100-300"}.Apply(catalog())
	if len(got) != 1 || got[0].Email != "wanjiku@example.com" {
		t.Fatalf("got %v", emails(got))
	}
}

// The open-ended bucket sweeps in both "300-500" and "500+" profiles but must
// never match "100-300" despite the shared digits.
func TestOpenEndedPriceBucket(t *testing.T) {
	got := Filter{Price: "300+"}.Apply(catalog())
	if len(got) != 2 || got[0].Email != "kamau@example.com" || got[1].Email != "akinyi@example.com" {
		t.Fatalf("got %v", emails(got))
	}
}

// Profiles saved before the price vocabulary settled carry buckets like
// "500-800"; the open-ended filter still has to find them.
func TestOpenEndedBucketMatchesLegacyPrices(t *testing.T) {
	pros := []Professional{
		{Email: "a@example.com", Price: "500-800"},
		{Email: "b@example.com", Price: "300-400"},
		{Email: "c@example.com", Price: "100-300"},
	}
	got := Filter{Price: "300+"}.Apply(pros)
	if len(got) != 2 || got[0].Email != "a@example.com" || got[1].Email != "b@example.com" {
		t.Fatalf("got %v, want a and b only", emails(got))
	}
}

func TestCombinedFilters(t *testing.T) {
	got := Filter{Service: "Plumber", MinRating: "4.0+"}.Apply(catalog())
	if len(got) != 1 || got[0].Email != "wanjiku@example.com" {
		t.Fatalf("got %v", emails(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := catalog()
	Filter{Service: "Plumber"}.Apply(in)
	if in[1].Email != "otieno@example.com" {
		t.Fatalf("input mutated: %v", emails(in))
	}
}
