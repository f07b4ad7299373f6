package client

import (
	"context"

	"github.com/danmuck/rbkctl/internal/protocol"
)

func (c *Client) ack(ctx context.Context, api uint16, req any) error {
	var out protocol.Ack
	return c.call(ctx, api, req, &out)
}

// State queries.

func (c *Client) RobotInfo(ctx context.Context) (protocol.RobotInfo, error) {
	var out protocol.RobotInfo
	err := c.call(ctx, protocol.APIRobotInfo, nil, &out)
	return out, err
}

func (c *Client) RunInfo(ctx context.Context) (protocol.RunInfo, error) {
	var out protocol.RunInfo
	err := c.call(ctx, protocol.APIRunInfo, nil, &out)
	return out, err
}

func (c *Client) Pose(ctx context.Context) (protocol.Pose, error) {
	var out protocol.Pose
	err := c.call(ctx, protocol.APIPose, nil, &out)
	return out, err
}

func (c *Client) Speed(ctx context.Context) (protocol.Speed, error) {
	var out protocol.Speed
	err := c.call(ctx, protocol.APISpeed, nil, &out)
	return out, err
}

func (c *Client) BlockStatus(ctx context.Context) (protocol.BlockStatus, error) {
	var out protocol.BlockStatus
	err := c.call(ctx, protocol.APIBlockStatus, nil, &out)
	return out, err
}

func (c *Client) BatteryStatus(ctx context.Context) (protocol.BatteryStatus, error) {
	var out protocol.BatteryStatus
	err := c.call(ctx, protocol.APIBatteryStatus, nil, &out)
	return out, err
}

func (c *Client) IOStatus(ctx context.Context) (protocol.IOStatus, error) {
	var out protocol.IOStatus
	err := c.call(ctx, protocol.APIIOStatus, nil, &out)
	return out, err
}

func (c *Client) NavStatus(ctx context.Context) (protocol.NavStatus, error) {
	var out protocol.NavStatus
	err := c.call(ctx, protocol.APINavStatus, nil, &out)
	return out, err
}

func (c *Client) JackStatus(ctx context.Context) (protocol.JackStatus, error) {
	var out protocol.JackStatus
	err := c.call(ctx, protocol.APIJackStatus, nil, &out)
	return out, err
}

func (c *Client) TaskPackage(ctx context.Context) (protocol.TaskPackage, error) {
	var out protocol.TaskPackage
	err := c.call(ctx, protocol.APITaskPackage, nil, &out)
	return out, err
}

func (c *Client) MapInfo(ctx context.Context) (protocol.MapInfo, error) {
	var out protocol.MapInfo
	err := c.call(ctx, protocol.APIMapInfo, nil, &out)
	return out, err
}

// Control commands.

func (c *Client) Stop(ctx context.Context) error {
	return c.ack(ctx, protocol.APIStop, nil)
}

func (c *Client) Relocate(ctx context.Context, x, y, angle float64) error {
	return c.ack(ctx, protocol.APIRelocate, protocol.RelocateRequest{X: x, Y: y, Angle: angle})
}

func (c *Client) ConfirmLocation(ctx context.Context) error {
	return c.ack(ctx, protocol.APIConfirmLocation, nil)
}

func (c *Client) SwitchMap(ctx context.Context, name string) error {
	return c.ack(ctx, protocol.APISwitchMap, protocol.SwitchMapRequest{MapName: name})
}

// Navigation commands.

func (c *Client) PauseTask(ctx context.Context) error {
	return c.ack(ctx, protocol.APIPauseTask, nil)
}

func (c *Client) ResumeTask(ctx context.Context) error {
	return c.ack(ctx, protocol.APIResumeTask, nil)
}

func (c *Client) CancelTask(ctx context.Context) error {
	return c.ack(ctx, protocol.APICancelTask, nil)
}

func (c *Client) MoveToPoint(ctx context.Context, x, y, angle float64) error {
	return c.ack(ctx, protocol.APIMoveToPoint, protocol.MoveToPointRequest{X: x, Y: y, Angle: angle})
}

func (c *Client) MoveToTarget(ctx context.Context, target protocol.MoveTarget) error {
	return c.ack(ctx, protocol.APIMoveToTarget, target)
}

func (c *Client) MoveTargetList(ctx context.Context, targets []protocol.MoveTarget) error {
	return c.ack(ctx, protocol.APIMoveTargetList, protocol.MoveTargetListRequest{Targets: targets})
}

// Configuration commands.

func (c *Client) LockControl(ctx context.Context, nick string) error {
	return c.ack(ctx, protocol.APILockControl, protocol.LockRequest{Nick: nick})
}

func (c *Client) UnlockControl(ctx context.Context) error {
	return c.ack(ctx, protocol.APIUnlockControl, nil)
}

func (c *Client) ClearErrors(ctx context.Context) error {
	return c.ack(ctx, protocol.APIClearErrors, nil)
}

func (c *Client) SetParams(ctx context.Context, params map[string]any) error {
	return c.ack(ctx, protocol.APISetParams, params)
}

// Kernel commands.

func (c *Client) Shutdown(ctx context.Context) error {
	return c.ack(ctx, protocol.APIShutdown, nil)
}

func (c *Client) Reboot(ctx context.Context) error {
	return c.ack(ctx, protocol.APIReboot, nil)
}

func (c *Client) ResetFirmware(ctx context.Context) error {
	return c.ack(ctx, protocol.APIResetFirmware, nil)
}

// Peripheral commands.

func (c *Client) PlayAudio(ctx context.Context, id string) error {
	return c.ack(ctx, protocol.APIPlayAudio, protocol.PlayAudioRequest{ID: id})
}

func (c *Client) StopAudio(ctx context.Context) error {
	return c.ack(ctx, protocol.APIStopAudio, nil)
}

func (c *Client) SetDO(ctx context.Context, id int, status bool) error {
	return c.ack(ctx, protocol.APISetDO, protocol.SetDORequest{ID: id, Status: status})
}

func (c *Client) JackLoad(ctx context.Context) error {
	return c.ack(ctx, protocol.APIJackLoad, nil)
}

func (c *Client) JackUnload(ctx context.Context) error {
	return c.ack(ctx, protocol.APIJackUnload, nil)
}

func (c *Client) JackStop(ctx context.Context) error {
	return c.ack(ctx, protocol.APIJackStop, nil)
}

func (c *Client) SetJackHeight(ctx context.Context, height float64) error {
	return c.ack(ctx, protocol.APISetJackHeight, protocol.SetHeightRequest{Height: height})
}

func (c *Client) SetForkHeight(ctx context.Context, height float64) error {
	return c.ack(ctx, protocol.APISetForkHeight, protocol.SetHeightRequest{Height: height})
}

func (c *Client) StopFork(ctx context.Context) error {
	return c.ack(ctx, protocol.APIStopFork, nil)
}

func (c *Client) RollerLoad(ctx context.Context) error {
	return c.ack(ctx, protocol.APIRollerLoad, nil)
}

func (c *Client) RollerUnload(ctx context.Context) error {
	return c.ack(ctx, protocol.APIRollerUnload, nil)
}

func (c *Client) RollerStop(ctx context.Context) error {
	return c.ack(ctx, protocol.APIRollerStop, nil)
}
