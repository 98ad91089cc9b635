package profile

import (
	"strconv"
	"strings"
)

// Filter narrows the professionals listing. The zero value of a field, or the
// literal "All", disables that predicate.
type Filter struct {
	Service   string
	Location  string
	MinRating string // threshold string like "4.5+"
	Price     string // bucket like "100-300" or "300+"
}

func active(f string) bool { return f != "" && f != "All" }

// Apply returns the professionals matching every active predicate, preserving
// the input (insertion) order. It is a pure function of its inputs.
//
// Price matching is bucket equality, except the open-ended "300+" bucket which
// also matches any price string starting with "300" or "500". That mirrors the
// historical bucket naming ("300-500" and "500+" profiles belong to "300+");
// see DESIGN.md before changing it.
func (f Filter) Apply(pros []Professional) []Professional {
	out := make([]Professional, 0, len(pros))
	for _, pro := range pros {
		if active(f.Service) && pro.Service != f.Service {
			continue
		}
		if active(f.Location) && pro.Location != f.Location {
			continue
		}
		if active(f.MinRating) {
			min, err := strconv.ParseFloat(strings.TrimSuffix(f.MinRating, "+"), 64)
			if err != nil || pro.Rating < min {
				continue
			}
		}
		if active(f.Price) {
			if f.Price == "300+" {
				if !strings.HasPrefix(pro.Price, "300") && !strings.HasPrefix(pro.Price, "500") {
					continue
				}
			} else if pro.Price != f.Price {
				continue
			}
		}
		out = append(out, pro)
	}
	return out
}
