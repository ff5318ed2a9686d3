package usbdev

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Recovery timing. The settle delay covers the bus re-enumerating after a
// reset; the poll loop then gives the capture driver time to bind.
const (
	SettleDelay  = 2 * time.Second
	PollInterval = 1 * time.Second
	MaxAttempts  = 5
)

// ErrDeviceNotFound is returned when no capture node could be obtained,
// either because nothing on the bus matches or because retries ran out.
var ErrDeviceNotFound = errors.New("thermal camera not found")

// State is a Recovery state.
type State int

const (
	StateSearching State = iota
	StateFound
	StateNoDevice
	StateResetting
	StateWaiting
	StateGiveUp
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "SEARCHING"
	case StateFound:
		return "FOUND"
	case StateNoDevice:
		return "NO_DEVICE"
	case StateResetting:
		return "RESETTING"
	case StateWaiting:
		return "WAITING"
	case StateGiveUp:
		return "GIVE_UP"
	default:
		return "UNKNOWN"
	}
}

// BusScanner lists bus devices matching an identity.
type BusScanner interface {
	Scan(id Identity) []BusDevice
}

// NodeResolver maps a bus device to its capture node.
type NodeResolver interface {
	Resolve(dev BusDevice) (VideoNode, bool)
}

// PortResetter forces a bus device to re-enumerate.
type PortResetter interface {
	Reset(dev BusDevice) error
}

// USBFSResetter resets devices through their usbfs control files.
type USBFSResetter struct {
	Root string
}

// Clock sleeps. It exists so tests can drive Recovery without real delays.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock sleeps on the wall clock.
type SystemClock struct{}

// Sleep blocks for d or until ctx is done.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Recovery finds the camera's capture node, resetting the USB port when the
// device is on the bus but no node is bound.
//
//	SEARCHING -> FOUND
//	SEARCHING -> NO_DEVICE
//	SEARCHING -> RESETTING -> WAITING -> (FOUND | GIVE_UP)
//
// The attempt ceiling is global: every matched device is reset once, then
// all of them share the same MaxAttempts polling ticks.
type Recovery struct {
	Identity     Identity
	Scanner      BusScanner
	Resolver     NodeResolver
	Resetter     PortResetter
	Clock        Clock
	Log          logrus.FieldLogger
	SettleDelay  time.Duration
	PollInterval time.Duration
	MaxAttempts  int
}

// NewRecovery creates a Recovery with the standard timings and the system clock.
func NewRecovery(id Identity, scanner BusScanner, resolver NodeResolver, resetter PortResetter, log logrus.FieldLogger) *Recovery {
	return &Recovery{
		Identity:     id,
		Scanner:      scanner,
		Resolver:     resolver,
		Resetter:     resetter,
		Clock:        SystemClock{},
		Log:          log,
		SettleDelay:  SettleDelay,
		PollInterval: PollInterval,
		MaxAttempts:  MaxAttempts,
	}
}

// Result describes how a Recovery run ended.
type Result struct {
	State  State
	Node   VideoNode
	Device BusDevice
	// Ticks is the number of polling ticks consumed in WAITING.
	Ticks int
	// Resets is the number of successful port resets.
	Resets int
	// Trace lists every state entered, in order.
	Trace []State
}

// Run drives the state machine to a terminal state. It returns
// ErrDeviceNotFound for NO_DEVICE and GIVE_UP, and ctx.Err() if ctx is
// cancelled while waiting.
func (r *Recovery) Run(ctx context.Context) (Result, error) {
	res := Result{}
	log := r.Log.WithField("device", r.Identity.String())

	res.enter(StateSearching)
	handles, node, dev, ok := r.search()
	if ok {
		return r.found(res, node, dev), nil
	}
	if len(handles) == 0 {
		res.enter(StateNoDevice)
		log.Error("Thermal camera not found on USB")
		return res, fmt.Errorf("%w: no USB device %s on the bus", ErrDeviceNotFound, r.Identity)
	}

	log.WithField("sysfs", handles[0].SysfsPath).Info("No video device bound, resetting USB to re-enumerate")
	res.enter(StateResetting)
	for _, h := range handles {
		hlog := log.WithFields(logrus.Fields{"bus": h.BusNum, "dev": h.DevNum})
		if err := r.Resetter.Reset(h); err != nil {
			hlog.WithError(err).Warn("USB reset failed")
			continue
		}
		hlog.Info("USB device reset")
		res.Resets++
		if err := r.Clock.Sleep(ctx, r.SettleDelay); err != nil {
			return res, err
		}
		break
	}

	res.enter(StateWaiting)
	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		if err := r.Clock.Sleep(ctx, r.PollInterval); err != nil {
			return res, err
		}
		res.Ticks = attempt
		res.enter(StateSearching)
		if _, node, dev, ok := r.search(); ok {
			return r.found(res, node, dev), nil
		}
		log.WithField("attempt", fmt.Sprintf("%d/%d", attempt, r.MaxAttempts)).Info("Waiting for device")
		if attempt < r.MaxAttempts {
			res.enter(StateWaiting)
		}
	}

	res.enter(StateGiveUp)
	log.Error("Cannot find thermal camera after reset")
	return res, fmt.Errorf("%w: no video node after %d attempts", ErrDeviceNotFound, r.MaxAttempts)
}

// search scans the bus and resolves the first handle that has a node.
func (r *Recovery) search() ([]BusDevice, VideoNode, BusDevice, bool) {
	handles := r.Scanner.Scan(r.Identity)
	for _, h := range handles {
		if node, ok := r.Resolver.Resolve(h); ok {
			return handles, node, h, true
		}
	}
	return handles, VideoNode{}, BusDevice{}, false
}

func (r *Recovery) found(res Result, node VideoNode, dev BusDevice) Result {
	res.enter(StateFound)
	res.Node = node
	res.Device = dev
	r.Log.WithFields(logrus.Fields{
		"sysfs": dev.SysfsPath,
		"node":  node.Path,
	}).Info("Found thermal camera")
	return res
}

func (res *Result) enter(s State) {
	res.State = s
	res.Trace = append(res.Trace, s)
}
