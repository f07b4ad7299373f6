package protocol

// Ack is the bare acknowledgment most commands answer with.
type Ack struct {
	Status
}

// RobotInfo answers APIRobotInfo.
type RobotInfo struct {
	ID      string `json:"id"`
	Version string `json:"version"`
	Model   string `json:"model"`
	Status
}

// RunInfo answers APIRunInfo. Times are milliseconds, odometer meters.
type RunInfo struct {
	Odometer          float64 `json:"odo"`
	Total             float64 `json:"total"`
	TotalTime         float64 `json:"total_time"`
	ControllerTemp    float64 `json:"controller_temp"`
	ControllerHumi    float64 `json:"controller_humi"`
	ControllerVoltage float64 `json:"controller_voltage"`
	Status
}

// Pose answers APIPose. Coordinates in meters, angle in radians.
type Pose struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Angle      float64 `json:"angle"`
	Confidence float64 `json:"confidence"`
	Status
}

// Speed answers APISpeed.
type Speed struct {
	Vx float64 `json:"vx"`
	Vy float64 `json:"vy"`
	W  float64 `json:"w"`
	Status
}

// BlockStatus answers APIBlockStatus.
type BlockStatus struct {
	Blocked bool     `json:"blocked"`
	Reason  *int     `json:"block_reason"`
	X       *float64 `json:"block_x"`
	Y       *float64 `json:"block_y"`
	Status
}

// BatteryStatus answers APIBatteryStatus. Level is a 0-1 fraction.
type BatteryStatus struct {
	Level    float64 `json:"battery_level"`
	Temp     float64 `json:"battery_temp"`
	Charging bool    `json:"charging"`
	Voltage  float64 `json:"voltage"`
	Current  float64 `json:"current"`
	Status
}

// IOBit is one digital input or output line.
type IOBit struct {
	ID     int  `json:"id"`
	Status bool `json:"status"`
}

// IOStatus answers APIIOStatus.
type IOStatus struct {
	DI []IOBit `json:"DI"`
	DO []IOBit `json:"DO"`
	Status
}

// NavStatus answers APINavStatus.
type NavStatus struct {
	TaskStatus     TaskStatus `json:"task_status"`
	TaskType       int        `json:"task_type"`
	TargetID       string     `json:"target_id"`
	TargetPoint    [3]float64 `json:"target_point"`
	FinishedPath   []string   `json:"finished_path"`
	UnfinishedPath []string   `json:"unfinished_path"`
	MoveStatusInfo string     `json:"move_status_info"`
	CreateOn       string     `json:"create_on"`
	Status
}

// JackStatus answers APIJackStatus.
type JackStatus struct {
	Mode      bool    `json:"jack_mode"`
	Enabled   bool    `json:"jack_enable"`
	ErrorCode int     `json:"jack_error_code"`
	State     int     `json:"jack_state"`
	Full      bool    `json:"jack_isFull"`
	Speed     float64 `json:"jack_speed"`
	EMC       bool    `json:"jack_emc"`
	Height    float64 `json:"jack_height"`
	CreateOn  string  `json:"create_on"`
	Status
}

// TaskStatusEntry is one element of a batch task query.
type TaskStatusEntry struct {
	TaskID string     `json:"task_id"`
	State  TaskStatus `json:"status"`
}

// TaskPackage answers APITaskPackage.
type TaskPackage struct {
	ClosestTarget  string            `json:"closest_target"`
	SourceName     string            `json:"source_name"`
	TargetName     string            `json:"target_name"`
	Percentage     float64           `json:"percentage"`
	Distance       float64           `json:"distance"`
	TaskStatusList []TaskStatusEntry `json:"task_status_list"`
	Info           string            `json:"info"`
	CreateOn       string            `json:"create_on"`
	Status
}

// MapInfo answers APIMapInfo.
type MapInfo struct {
	CurrentMap string   `json:"current_map"`
	Maps       []string `json:"map_list"`
	Status
}

// MoveTarget is one navigation leg toward a named waypoint.
type MoveTarget struct {
	ID     string `json:"id"`
	TaskID string `json:"task_id,omitempty"`
	Method string `json:"method,omitempty"`
}

// MoveToPointRequest asks for free navigation to raw coordinates.
type MoveToPointRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// MoveTargetListRequest queues several legs navigated in order.
type MoveTargetListRequest struct {
	Targets []MoveTarget `json:"move_task_list"`
}

// RelocateRequest seeds the localizer with a pose estimate.
type RelocateRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// SwitchMapRequest switches the loaded map.
type SwitchMapRequest struct {
	MapName string `json:"map_name"`
}

// LockRequest takes the control lock for the named operator.
type LockRequest struct {
	Nick string `json:"nick_name,omitempty"`
}

// PlayAudioRequest starts playback of a stored audio clip.
type PlayAudioRequest struct {
	ID string `json:"id"`
}

// SetDORequest drives one digital output line.
type SetDORequest struct {
	ID     int  `json:"id"`
	Status bool `json:"status"`
}

// SetHeightRequest moves the jack or fork to an absolute height in meters.
type SetHeightRequest struct {
	Height float64 `json:"height"`
}
