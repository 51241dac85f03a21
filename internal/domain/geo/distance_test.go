package geo_test

import (
	"math"
	"testing"

	"gigboard/internal/domain/geo"
)

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	p := geo.Coordinate{Lat: -6.2, Lng: 106.8}
	if d := geo.DistanceKm(p, p); d != 0 {
		t.Fatalf("distance to self = %f, want 0", d)
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	p := geo.Coordinate{Lat: -6.2088, Lng: 106.8456} // Jakarta
	q := geo.Coordinate{Lat: -6.9175, Lng: 107.6191} // Bandung
	if d1, d2 := geo.DistanceKm(p, q), geo.DistanceKm(q, p); d1 != d2 {
		t.Fatalf("distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Jakarta to Bandung is roughly 120 km as the crow flies.
	p := geo.Coordinate{Lat: -6.2088, Lng: 106.8456}
	q := geo.Coordinate{Lat: -6.9175, Lng: 107.6191}
	d := geo.DistanceKm(p, q)
	if math.Abs(d-116) > 10 {
		t.Fatalf("Jakarta-Bandung distance = %f km, expected ~116", d)
	}
}

func TestDistanceKm_OneDegreeLatitude(t *testing.T) {
	p := geo.Coordinate{Lat: 0, Lng: 0}
	q := geo.Coordinate{Lat: 1, Lng: 0}
	d := geo.DistanceKm(p, q)
	if math.Abs(d-111.2) > 1 {
		t.Fatalf("one degree of latitude = %f km, expected ~111.2", d)
	}
}
