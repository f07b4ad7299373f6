package protocol

import (
	"encoding/json"
	"fmt"
)

// Descriptor binds one operation number to its name and response shape.
// New constructs the typed response the operation answers with; operations
// answering a bare status use a nil New and decode as Ack.
type Descriptor struct {
	API  uint16
	Name string
	New  func() any
}

// Category derives from the operation number; it is not stored.
func (d Descriptor) Category() Category { return CategoryOf(d.API) }

var registry = map[uint16]Descriptor{
	APIRobotInfo:        {API: APIRobotInfo, Name: "robot_info", New: func() any { return &RobotInfo{} }},
	APIRunInfo:          {API: APIRunInfo, Name: "run_info", New: func() any { return &RunInfo{} }},
	APIRobotMode:        {API: APIRobotMode, Name: "robot_mode"},
	APIPose:             {API: APIPose, Name: "pose", New: func() any { return &Pose{} }},
	APISpeed:            {API: APISpeed, Name: "speed", New: func() any { return &Speed{} }},
	APIBlockStatus:      {API: APIBlockStatus, Name: "block_status", New: func() any { return &BlockStatus{} }},
	APIBatteryStatus:    {API: APIBatteryStatus, Name: "battery_status", New: func() any { return &BatteryStatus{} }},
	APIBrakeStatus:      {API: APIBrakeStatus, Name: "brake_status"},
	APIEmergencyStatus:  {API: APIEmergencyStatus, Name: "emergency_status"},
	APIIOStatus:         {API: APIIOStatus, Name: "io_status", New: func() any { return &IOStatus{} }},
	APINavStatus:        {API: APINavStatus, Name: "nav_status", New: func() any { return &NavStatus{} }},
	APIRelocationStatus: {API: APIRelocationStatus, Name: "relocation_status"},
	APILoadMapStatus:    {API: APILoadMapStatus, Name: "load_map_status"},
	APIJackStatus:       {API: APIJackStatus, Name: "jack_status", New: func() any { return &JackStatus{} }},
	APIAllStatus1:       {API: APIAllStatus1, Name: "all_status_1"},
	APIAllStatus2:       {API: APIAllStatus2, Name: "all_status_2"},
	APIAllStatus3:       {API: APIAllStatus3, Name: "all_status_3"},
	APITaskPackage:      {API: APITaskPackage, Name: "task_package", New: func() any { return &TaskPackage{} }},
	APIMapInfo:          {API: APIMapInfo, Name: "map_info", New: func() any { return &MapInfo{} }},
	APIRobotParams:      {API: APIRobotParams, Name: "robot_params"},

	APIStop:             {API: APIStop, Name: "stop"},
	APIRelocate:         {API: APIRelocate, Name: "relocate"},
	APIConfirmLocation:  {API: APIConfirmLocation, Name: "confirm_location"},
	APIOpenLoopMotion:   {API: APIOpenLoopMotion, Name: "open_loop_motion"},
	APIStartSlam:        {API: APIStartSlam, Name: "start_slam"},
	APIStopSlam:         {API: APIStopSlam, Name: "stop_slam"},
	APISwitchMap:        {API: APISwitchMap, Name: "switch_map"},
	APIReloadMapObjects: {API: APIReloadMapObjects, Name: "reload_map_objects"},

	APIPauseTask:      {API: APIPauseTask, Name: "pause_task"},
	APIResumeTask:     {API: APIResumeTask, Name: "resume_task"},
	APICancelTask:     {API: APICancelTask, Name: "cancel_task"},
	APIMoveToPoint:    {API: APIMoveToPoint, Name: "move_to_point"},
	APIMoveToTarget:   {API: APIMoveToTarget, Name: "move_to_target"},
	APIPatrol:         {API: APIPatrol, Name: "patrol"},
	APITranslate:      {API: APITranslate, Name: "translate"},
	APITurn:           {API: APITurn, Name: "turn"},
	APIMoveTargetList: {API: APIMoveTargetList, Name: "move_target_list"},

	APISwitchMode:    {API: APISwitchMode, Name: "switch_mode"},
	APISetConfig:     {API: APISetConfig, Name: "set_config"},
	APISaveConfig:    {API: APISaveConfig, Name: "save_config"},
	APIReloadConfig:  {API: APIReloadConfig, Name: "reload_config"},
	APILockControl:   {API: APILockControl, Name: "lock_control"},
	APIUnlockControl: {API: APIUnlockControl, Name: "unlock_control"},
	APIClearErrors:   {API: APIClearErrors, Name: "clear_errors"},
	APISetParams:     {API: APISetParams, Name: "set_params"},

	APIPlayAudio:     {API: APIPlayAudio, Name: "play_audio"},
	APISetDO:         {API: APISetDO, Name: "set_do"},
	APIStopAudio:     {API: APIStopAudio, Name: "stop_audio"},
	APIJackLoad:      {API: APIJackLoad, Name: "jack_load"},
	APIJackUnload:    {API: APIJackUnload, Name: "jack_unload"},
	APIJackStop:      {API: APIJackStop, Name: "jack_stop"},
	APISetJackHeight: {API: APISetJackHeight, Name: "set_jack_height"},
	APISetForkHeight: {API: APISetForkHeight, Name: "set_fork_height"},
	APIStopFork:      {API: APIStopFork, Name: "stop_fork"},
	APIRollerLoad:    {API: APIRollerLoad, Name: "roller_load"},
	APIRollerUnload:  {API: APIRollerUnload, Name: "roller_unload"},
	APIRollerStop:    {API: APIRollerStop, Name: "roller_stop"},

	APIShutdown:      {API: APIShutdown, Name: "shutdown"},
	APIReboot:        {API: APIReboot, Name: "reboot"},
	APIResetFirmware: {API: APIResetFirmware, Name: "reset_firmware"},
}

// Lookup returns the descriptor for api. Unregistered numbers get a
// generic descriptor and ok=false so callers can fall back to raw JSON.
func Lookup(api uint16) (Descriptor, bool) {
	d, ok := registry[api]
	if !ok {
		return Descriptor{API: api, Name: fmt.Sprintf("api_%d", api)}, false
	}
	return d, true
}

// Name returns the registry name for api, or a numeric placeholder.
func Name(api uint16) string {
	d, _ := Lookup(api)
	return d.Name
}

// EncodeRequest renders a request payload. A nil request is an empty body.
func EncodeRequest(req any) ([]byte, error) {
	if req == nil {
		return nil, nil
	}
	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return b, nil
}

// DecodeResponse decodes body into the typed response registered for api.
// Empty bodies and unregistered operations decode as Ack. A non-zero
// ret_code inside the body is returned alongside the decoded value so
// callers see both.
func DecodeResponse(api uint16, body []byte) (any, error) {
	d, _ := Lookup(api)
	var out any
	if d.New != nil {
		out = d.New()
	} else {
		out = &Ack{}
	}
	if len(body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("%w: api %d (%s): %v", ErrDecode, api, d.Name, err)
	}
	return out, nil
}

// Validate checks that every registry entry sits inside the range its
// category documents. It exists to keep catalog edits honest.
func Validate() error {
	for api, d := range registry {
		if api != d.API {
			return fmt.Errorf("protocol: registry key %d carries descriptor for %d", api, d.API)
		}
		if d.Name == "" {
			return fmt.Errorf("protocol: api %d has no name", api)
		}
		if CategoryOf(api) == CategoryCustom {
			return fmt.Errorf("protocol: api %d (%s) is outside every documented range", api, d.Name)
		}
	}
	return nil
}
