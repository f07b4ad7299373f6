package protocol

// Category groups operation numbers into port-bound modules.
type Category int

const (
	CategoryState Category = iota
	CategoryControl
	CategoryNav
	CategoryConfig
	CategoryPeripheral
	CategoryKernel
	CategoryCustom
)

func (c Category) String() string {
	switch c {
	case CategoryState:
		return "state"
	case CategoryControl:
		return "control"
	case CategoryNav:
		return "nav"
	case CategoryConfig:
		return "config"
	case CategoryPeripheral:
		return "peripheral"
	case CategoryKernel:
		return "kernel"
	default:
		return "custom"
	}
}

// Fixed vendor port bindings, one TCP port per category.
const (
	PortState      = 19204
	PortControl    = 19205
	PortNav        = 19206
	PortConfig     = 19207
	PortKernel     = 19208
	PortPeripheral = 19210
)

// CategoryOf maps an operation number into its category. Numbers outside
// every documented range (including the 9000+ push block) are custom and
// carry no fixed port.
func CategoryOf(api uint16) Category {
	switch {
	case api >= 1000 && api <= 1999:
		return CategoryState
	case api >= 2000 && api <= 2999:
		return CategoryControl
	case api >= 3000 && api <= 3999:
		return CategoryNav
	case api >= 4000 && api <= 5999:
		return CategoryConfig
	case api >= 6000 && api <= 6998:
		return CategoryPeripheral
	case api >= 7000 && api <= 7999:
		return CategoryKernel
	default:
		return CategoryCustom
	}
}

// PortOf resolves a category to its TCP port. The second result is false
// for CategoryCustom, which has no fixed binding.
func PortOf(c Category) (int, bool) {
	switch c {
	case CategoryState:
		return PortState, true
	case CategoryControl:
		return PortControl, true
	case CategoryNav:
		return PortNav, true
	case CategoryConfig:
		return PortConfig, true
	case CategoryPeripheral:
		return PortPeripheral, true
	case CategoryKernel:
		return PortKernel, true
	default:
		return 0, false
	}
}

// State queries (1000-1999, port 19204).
const (
	APIRobotInfo        uint16 = 1000
	APIRunInfo          uint16 = 1002
	APIRobotMode        uint16 = 1003
	APIPose             uint16 = 1004
	APISpeed            uint16 = 1005
	APIBlockStatus      uint16 = 1006
	APIBatteryStatus    uint16 = 1007
	APIBrakeStatus      uint16 = 1008
	APIEmergencyStatus  uint16 = 1012
	APIIOStatus         uint16 = 1013
	APINavStatus        uint16 = 1020
	APIRelocationStatus uint16 = 1021
	APILoadMapStatus    uint16 = 1022
	APIJackStatus       uint16 = 1027
	APIAllStatus1       uint16 = 1100
	APIAllStatus2       uint16 = 1101
	APIAllStatus3       uint16 = 1102
	APITaskPackage      uint16 = 1110
	APIMapInfo          uint16 = 1300
	APIRobotParams      uint16 = 1400
)

// Control commands (2000-2999, port 19205).
const (
	APIStop             uint16 = 2000
	APIRelocate         uint16 = 2002
	APIConfirmLocation  uint16 = 2003
	APIOpenLoopMotion   uint16 = 2010
	APIStartSlam        uint16 = 2020
	APIStopSlam         uint16 = 2021
	APISwitchMap        uint16 = 2022
	APIReloadMapObjects uint16 = 2023
)

// Navigation commands (3000-3999, port 19206).
const (
	APIPauseTask      uint16 = 3001
	APIResumeTask     uint16 = 3002
	APICancelTask     uint16 = 3003
	APIMoveToPoint    uint16 = 3050
	APIMoveToTarget   uint16 = 3051
	APIPatrol         uint16 = 3052
	APITranslate      uint16 = 3055
	APITurn           uint16 = 3056
	APIMoveTargetList uint16 = 3066
)

// Configuration (4000-5999, port 19207).
const (
	APISwitchMode    uint16 = 4000
	APISetConfig     uint16 = 4001
	APISaveConfig    uint16 = 4002
	APIReloadConfig  uint16 = 4003
	APILockControl   uint16 = 4005
	APIUnlockControl uint16 = 4006
	APIClearErrors   uint16 = 4009
	APISetParams     uint16 = 4100
)

// Peripheral control (6000-6998, port 19210).
const (
	APIPlayAudio     uint16 = 6000
	APISetDO         uint16 = 6001
	APIStopAudio     uint16 = 6002
	APIJackLoad      uint16 = 6070
	APIJackUnload    uint16 = 6071
	APIJackStop      uint16 = 6072
	APISetJackHeight uint16 = 6073
	APISetForkHeight uint16 = 6080
	APIStopFork      uint16 = 6082
	APIRollerLoad    uint16 = 6090
	APIRollerUnload  uint16 = 6091
	APIRollerStop    uint16 = 6092
)

// Kernel operations (7000-7999, port 19208).
const (
	APIShutdown      uint16 = 7000
	APIReboot        uint16 = 7003
	APIResetFirmware uint16 = 7005
)
