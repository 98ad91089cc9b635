package profile

// Catalog enumerations shared across the platform. Jobs and professional
// profiles both draw from the same service list.
var (
	Services    = []string{"Plumber", "Cleaner", "Web Designer", "Electrician", "Carpenter"}
	PriceRanges = []string{"0-50", "50-100", "100-300", "300-500", "500+"}

	// Filter vocabularies; "All" disables the corresponding predicate.
	FilterLocations  = []string{"Nairobi", "Mombasa", "Kisumu"}
	RatingThresholds = []string{"4.0+", "4.5+", "4.8+"}
	PriceBuckets     = []string{"0-50", "50-100", "100-300", "300+"}
)

// Professional is a provider profile, keyed by account email in the
// professionals collection. A fresh profile starts at rating 5.0 with zero
// reviews; the aggregate is replaced entirely by the first review received.
type Professional struct {
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Service     string  `json:"service"`
	Bio         string  `json:"bio"`
	Price       string  `json:"price"`
	Location    string  `json:"location"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
	Certified   bool    `json:"certified"`
	IDNumber    string  `json:"id_number"`
	License     string  `json:"license"`
}

// ValidService reports whether s is one of the catalog services.
func ValidService(s string) bool {
	for _, v := range Services {
		if v == s {
			return true
		}
	}
	return false
}

// ValidPriceRange reports whether p is one of the catalog price ranges.
func ValidPriceRange(p string) bool {
	for _, v := range PriceRanges {
		if v == p {
			return true
		}
	}
	return false
}
