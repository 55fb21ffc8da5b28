package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/bdube/pslrtether/capability"
	"github.com/bdube/pslrtether/config"
	"github.com/bdube/pslrtether/internal/util"
	"github.com/bdube/pslrtether/observer"
	"github.com/bdube/pslrtether/poller"
	"github.com/bdube/pslrtether/protocol"
	"github.com/bdube/pslrtether/scsi"
	"github.com/bdube/pslrtether/status"
)

// notConnectedName is the sentinel GetCameraName returns while
// disconnected, preserved from the vendor library for parity.
const notConnectedName = "Not connected"

// Controller is the public operation surface of this module: one handle
// per camera, matching the vendor library's one-handle-per-instance
// design. The zero value is not usable; use New.
type Controller struct {
	transport scsi.Transport
	transportMu sync.Mutex

	stateMu sync.Mutex
	state   State
	devicePath string

	cache    *status.Cache
	registry *observer.Registry
	poller   *poller.Worker

	capMu sync.Mutex
	cap   capability.Record

	nameMu sync.Mutex
	cameraName string

	opts   config.Options
	optsMu sync.Mutex

	logger *log.Logger

	reconnectMu     sync.Mutex
	reconnectCancel context.CancelFunc
}

// New builds a Controller around transport, using opts for reconnect and
// freshness policy. A nil logger defaults to log.Default(), matching the
// teacher's own logging idiom of never requiring a logger to be threaded
// through by hand.
func New(transport scsi.Transport, opts config.Options, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	c := &Controller{
		transport:  transport,
		registry:   observer.New(),
		opts:       opts,
		logger:     logger,
		cameraName: notConnectedName,
	}
	c.cache = status.New(c.refreshStatus, c.maxAge())
	c.poller = poller.New(c.maxAge(), c.pollAndFire)
	return c
}

func (c *Controller) maxAge() time.Duration {
	c.optsMu.Lock()
	defer c.optsMu.Unlock()
	return util.SecsToDuration(c.opts.StatusMaxAgeSeconds)
}

// SetOptions updates the controller's tunables, e.g. in response to
// config.Watch firing. AutoReconnect takes effect on the next reconnect
// decision; the freshness window takes effect immediately.
func (c *Controller) SetOptions(opts config.Options) {
	c.optsMu.Lock()
	c.opts = opts
	c.optsMu.Unlock()
	c.cache.SetMaxAge(c.maxAge())
}

// State reports the controller's current connection state.
func (c *Controller) State() State {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}

// Capability returns the capability record latched at connect time. It is
// only valid while connected.
func (c *Controller) Capability() capability.Record {
	c.capMu.Lock()
	defer c.capMu.Unlock()
	return c.cap
}

// Connect polls the transport open every second until it succeeds or
// timeout elapses, matching the vendor library's connect loop. On success
// it identifies the camera, latches its capability record, starts the
// poller, and notifies connection observers with true.
func (c *Controller) Connect(devicePath string, timeout time.Duration) error {
	c.setState(StateConnecting)
	c.logger.Printf("session: connecting to %s", devicePath)

	deadline := time.Now().Add(timeout)
	op := func() error {
		if time.Now().After(deadline) {
			return backoff.Permanent(fmt.Errorf("connect timed out after %s", timeout))
		}
		return c.transport.Open(devicePath)
	}
	if err := backoff.Retry(op, backoff.NewConstantBackOff(time.Second)); err != nil {
		c.setState(StateDisconnected)
		return fmt.Errorf("session: %w", err)
	}

	name, modelTag, err := c.identify()
	if err != nil {
		c.transport.Close()
		c.setState(StateDisconnected)
		return fmt.Errorf("session: identify failed: %w", err)
	}

	c.capMu.Lock()
	c.cap = capability.Lookup(modelTag)
	c.capMu.Unlock()

	c.nameMu.Lock()
	c.cameraName = name
	c.nameMu.Unlock()

	c.stateMu.Lock()
	c.devicePath = devicePath
	c.stateMu.Unlock()

	c.setState(StateConnected)
	c.poller.Start()
	c.registry.Fire("connection", true)
	c.logger.Printf("session: connected to %s (%s)", name, modelTag)
	return nil
}

func (c *Controller) identify() (name, modelTag string, err error) {
	c.transportMu.Lock()
	defer c.transportMu.Unlock()

	cdb := protocol.EncodeIdentify()
	resp := make([]byte, 64)
	if _, err := c.transport.Execute(cdb, resp, scsi.DirectionFromDevice, scsi.DefaultTimeout); err != nil {
		return "", "", err
	}
	return protocol.DecodeIdentify(resp)
}

// Disconnect closes the transport handle, notifies observers with false,
// and transitions to disconnected. No disconnect command is sent to the
// camera before the handle is closed.
func (c *Controller) Disconnect() error {
	c.cancelReconnect()
	c.poller.Stop()

	c.transportMu.Lock()
	err := c.transport.Close()
	c.transportMu.Unlock()

	c.cache.Clear()
	c.nameMu.Lock()
	c.cameraName = notConnectedName
	c.nameMu.Unlock()

	c.setState(StateDisconnected)
	c.registry.Fire("connection", false)
	c.logger.Printf("session: disconnected")
	return err
}

// GetCameraName returns the connected camera's name, or the vendor
// library's "Not connected" sentinel string while disconnected.
func (c *Controller) GetCameraName() (string, bool) {
	c.nameMu.Lock()
	defer c.nameMu.Unlock()
	return c.cameraName, c.cameraName != notConnectedName
}

// refreshStatus is the status.Refresher the cache calls; it serializes
// access to the transport under the transport mutex and classifies a
// device-gone error into the auto-reconnect path.
func (c *Controller) refreshStatus() (protocol.Snapshot, error) {
	c.transportMu.Lock()
	cdb := protocol.EncodeGetStatus()
	resp := make([]byte, 256)
	_, err := c.transport.Execute(cdb, resp, scsi.DirectionFromDevice, scsi.DefaultTimeout)
	c.transportMu.Unlock()

	if err != nil {
		if scsi.IsDeviceGone(err) {
			c.handleDeviceGone()
		}
		return protocol.Snapshot{}, err
	}
	return protocol.DecodeStatus(resp)
}

// handleDeviceGone clears the handle and, if auto-reconnect is enabled,
// asynchronously schedules another connect attempt.
func (c *Controller) handleDeviceGone() {
	c.poller.Stop()
	c.transportMu.Lock()
	c.transport.Close()
	c.transportMu.Unlock()
	c.setState(StateDisconnected)
	c.registry.Fire("connection", false)

	c.optsMu.Lock()
	autoReconnect := c.opts.AutoReconnect
	reconnectTimeout := time.Duration(c.opts.ReconnectTimeoutSeconds) * time.Second
	c.optsMu.Unlock()

	if !autoReconnect {
		return
	}

	c.reconnectMu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	c.reconnectCancel = cancel
	c.reconnectMu.Unlock()

	go c.reconnectLoop(ctx, reconnectTimeout)
}

func (c *Controller) cancelReconnect() {
	c.reconnectMu.Lock()
	cancel := c.reconnectCancel
	c.reconnectCancel = nil
	c.reconnectMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *Controller) reconnectLoop(ctx context.Context, timeout time.Duration) {
	c.stateMu.Lock()
	path := c.devicePath
	c.stateMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if err := c.Connect(path, timeout); err != nil {
		c.logger.Printf("session: reconnect to %s gave up: %v", path, err)
	}
}
