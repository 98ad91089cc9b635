package geo

import "math"

// Point is a position in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

const earthRadiusKm = 6371.0

// DefaultArea is used when a location string is not in the gazetteer.
const DefaultArea = "CBD"

// DefaultOrigin is assumed for callers that do not state where they are.
const DefaultOrigin = "Kilimani"

// Known Nairobi areas. Coordinates are approximate area centroids.
var areas = map[string]Point{
	"Westlands": {Lat: -1.2676, Lon: 36.8108},
	"Karen":     {Lat: -1.3197, Lon: 36.6859},
	"Kilimani":  {Lat: -1.2921, Lon: 36.7872},
	"CBD":       {Lat: -1.2864, Lon: 36.8172},
	"Kasarani":  {Lat: -1.2258, Lon: 36.8969},
	"Embakasi":  {Lat: -1.3031, Lon: 36.8929},
}

// Areas lists the gazetteer area names.
func Areas() []string {
	names := make([]string, 0, len(areas))
	for name := range areas {
		names = append(names, name)
	}
	return names
}

// Locate maps an area name to its coordinates, falling back to the CBD for
// anything the gazetteer does not know.
func Locate(name string) Point {
	if p, ok := areas[name]; ok {
		return p
	}
	return areas[DefaultArea]
}

// Haversine returns the great-circle distance between two points in
// kilometres.
func Haversine(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Distance returns the distance in kilometres between two named areas.
// Unknown names resolve to the CBD.
func Distance(from, to string) float64 {
	return Haversine(Locate(from), Locate(to))
}
