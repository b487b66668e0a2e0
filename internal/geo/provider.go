package geo

import (
	"context"
	"fmt"
	"strconv"
)

// Fix is one position result from the device geolocation provider.
type Fix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locator is the device geolocation boundary: a one-shot, high-accuracy
// position request. Implementations live in the host shell; failures are
// advisory and never block the inspection.
type Locator interface {
	Locate(ctx context.Context) (Fix, error)
}

// FormatAddress renders a fix into the address string stored on the report.
func FormatAddress(fix Fix) string {
	return fmt.Sprintf("Lat: %s, Lng: %s",
		strconv.FormatFloat(fix.Latitude, 'f', -1, 64),
		strconv.FormatFloat(fix.Longitude, 'f', -1, 64),
	)
}
