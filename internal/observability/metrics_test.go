package observability

import (
	"testing"
	"time"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordTransaction("ENTRY", "success", 3*time.Millisecond)
	RecordTransaction("EXIT", "unknown_vehicle", 1*time.Millisecond)
	RecordFee(7.0)
	SetVehiclesOnHighway(3)
	RecordHTTPRequest("tolld", "GET", "/health", 200, 12*time.Millisecond)
}
