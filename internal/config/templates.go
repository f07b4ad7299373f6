package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "mockrobot":
		return mockRobotTemplate, nil
	case "client":
		return clientTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const mockRobotTemplate = `[robot]
id = "MOCK_ROBOT_001"
version = "v1.0.0-mock"
model = "RBK-MOCK"
tick_ms = 1000
battery_drain = 0.0001
move_speed = 0.5
arrive_threshold = 0.01
max_jack_height = 1.0
max_fork_height = 3.0
io_lines = 8
initial_battery = 0.85
initial_map = "default_map"
map_list = ["default_map", "warehouse_map"]

[listen]
host = ""
read_timeout_ms = 300000
write_timeout_ms = 10000

[sidecar]
addr = ":8080"
cors_origins = ["http://localhost:3000"]

[log]
level = "info"

[[waypoints]]
id = "station_a"
x = 10.0
y = 5.0

[[waypoints]]
id = "station_b"
x = 12.0
y = 5.0

[[waypoints]]
id = "charge_dock"
x = 0.0
y = 0.0
`

const clientTemplate = `host = "127.0.0.1"
connect_timeout_ms = 5000
request_timeout_ms = 10000
`
