package geo

import "testing"

// TestFormatAddress verifies the fixed address rendering, including that
// coordinates never pick up exponent notation or trailing zeros.
func TestFormatAddress(t *testing.T) {
	cases := []struct {
		fix  Fix
		want string
	}{
		{Fix{Latitude: 19.4326, Longitude: -99.1332}, "Lat: 19.4326, Lng: -99.1332"},
		{Fix{Latitude: 0, Longitude: 0}, "Lat: 0, Lng: 0"},
		{Fix{Latitude: -33.5, Longitude: 151.25}, "Lat: -33.5, Lng: 151.25"},
	}

	for _, c := range cases {
		if got := FormatAddress(c.fix); got != c.want {
			t.Fatalf("FormatAddress(%+v) = %q, want %q", c.fix, got, c.want)
		}
	}
}
