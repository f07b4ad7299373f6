package observability

import (
	"testing"
	"time"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordAPIRequest("MOCK_ROBOT_001", "state", 1004, 0, 3*time.Millisecond)
	RecordAPIRequest("MOCK_ROBOT_001", "nav", 3051, 40003, 5*time.Millisecond)
	SessionOpened("MOCK_ROBOT_001", "control")
	SessionClosed("MOCK_ROBOT_001", "control")
	RecordSimTick("MOCK_ROBOT_001")
	RecordHTTPRequest("MOCK_ROBOT_001", "GET", "/api/v1/waypoints", 200, 8*time.Millisecond)
}
