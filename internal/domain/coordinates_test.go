package domain

import (
	"math"
	"testing"
)

func TestCoordinatesValid(t *testing.T) {
	cases := []struct {
		name string
		c    Coordinates
		want bool
	}{
		{"origin", Coordinates{0, 0}, true},
		{"santiago", Coordinates{-33.45, -70.66}, true},
		{"lat edge", Coordinates{90, 180}, true},
		{"lat over", Coordinates{90.1, 0}, false},
		{"lon over", Coordinates{0, -180.5}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Valid(); got != tc.want {
				t.Fatalf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDistanceKm(t *testing.T) {
	// Santiago to Valparaíso, roughly 100 km as the crow flies.
	santiago := Coordinates{Lat: -33.4489, Lon: -70.6693}
	valparaiso := Coordinates{Lat: -33.0472, Lon: -71.6127}

	got := santiago.DistanceKm(valparaiso)
	if got < 95 || got > 105 {
		t.Fatalf("distance = %v km, expected about 100 km", got)
	}

	// Symmetric, and zero to itself.
	back := valparaiso.DistanceKm(santiago)
	if math.Abs(got-back) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", got, back)
	}
	if d := santiago.DistanceKm(santiago); d != 0 {
		t.Errorf("self distance = %v, want 0", d)
	}
}
