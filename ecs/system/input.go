package system

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/templehub/ecs"
	"github.com/milk9111/templehub/ecs/component"
	"github.com/milk9111/templehub/locomotion"
	"github.com/milk9111/templehub/logging"
	"go.uber.org/zap"
)

// KeyboardController is the ID of the keyboard's virtual controller.
const KeyboardController locomotion.ControllerID = "keyboard"

const (
	stickDeadzone = 0.15
	maxPitch      = 1.3
)

// HandConfig places new controllers and sets how fast they can be steered.
type HandConfig struct {
	Grip      mgl64.Vec3
	AimRate   float64
	WalkSpeed float64
	PlayArea  float64
}

// InputSystem samples gamepads and the keyboard into Controller components,
// one entity per device.
type InputSystem struct {
	hands    HandConfig
	dt       time.Duration
	gamepads map[ebiten.GamepadID]ecs.Entity
	keyboard ecs.Entity
	hasKeys  bool
	ids      []ebiten.GamepadID

	// Enabled is false while a text field has focus.
	Enabled bool
}

func NewInputSystem(hands HandConfig, dt time.Duration) *InputSystem {
	return &InputSystem{
		hands:    hands,
		dt:       dt,
		gamepads: make(map[ebiten.GamepadID]ecs.Entity),
		Enabled:  true,
	}
}

// SetHands applies a reloaded hand configuration to new and existing
// controllers.
func (i *InputSystem) SetHands(w *ecs.World, hands HandConfig) {
	i.hands = hands
	ecs.ForEach(w, component.ControllerComponent, func(_ ecs.Entity, c *component.Controller) {
		c.Grip = hands.Grip
	})
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	i.updateKeyboard(w)
	i.updateGamepads(w)
}

func (i *InputSystem) updateKeyboard(w *ecs.World) {
	if !i.hasKeys || !ecs.IsAlive(w, i.keyboard) {
		e, err := i.spawn(w, KeyboardController, "keyboard")
		if err != nil {
			logging.L().Error("input: spawn keyboard controller", zap.Error(err))
			return
		}
		i.keyboard = e
		i.hasKeys = true
	}

	c, ok := ecs.Get(w, i.keyboard, component.ControllerComponent)
	if !ok {
		return
	}
	if !i.Enabled {
		c.Axes = c.Axes[:0]
		Suspend(c)
		return
	}

	var yaw, pitch float64
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		yaw++
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		yaw--
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		pitch++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		pitch--
	}
	Steer(c, yaw, pitch, i.hands.AimRate, i.dt)

	var ax, ay float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		ax--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		ax++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		ay--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		ay++
	}
	c.Axes = append(c.Axes[:0], ax, ay)

	SetButton(c, ebiten.IsKeyPressed(ebiten.KeySpace))

	var dx, dz float64
	if ebiten.IsKeyPressed(ebiten.KeyJ) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyL) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyI) {
		dz--
	}
	if ebiten.IsKeyPressed(ebiten.KeyK) {
		dz++
	}
	if dx != 0 || dz != 0 {
		if rig, ok := ecs.First(w, component.RigTagComponent); ok {
			if head, ok := ecs.Get(w, rig, component.HeadComponent); ok {
				Walk(head, dx, dz, i.hands.WalkSpeed, i.hands.PlayArea, i.dt)
			}
		}
	}
}

func (i *InputSystem) updateGamepads(w *ecs.World) {
	i.ids = ebiten.AppendGamepadIDs(i.ids[:0])
	connected := make(map[ebiten.GamepadID]bool, len(i.ids))

	for _, id := range i.ids {
		connected[id] = true
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}

		e, ok := i.gamepads[id]
		if !ok || !ecs.IsAlive(w, e) {
			cid := locomotion.ControllerID(fmt.Sprintf("gamepad-%d", id))
			spawned, err := i.spawn(w, cid, ebiten.GamepadName(id))
			if err != nil {
				logging.L().Error("input: spawn gamepad controller", zap.Error(err))
				continue
			}
			logging.L().Info("input: gamepad connected", zap.String("id", string(cid)), zap.String("name", ebiten.GamepadName(id)))
			i.gamepads[id] = spawned
			e = spawned
		}

		c, ok := ecs.Get(w, e, component.ControllerComponent)
		if !ok {
			continue
		}
		if !i.Enabled {
			c.Axes = c.Axes[:0]
			Suspend(c)
			continue
		}

		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			Steer(c, -lx, -ly, i.hands.AimRate, i.dt)
		}

		// Only the right stick drives snap-turn and arc speed; the left
		// stick is busy aiming.
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		c.Axes = append(c.Axes[:0], 0, 0, rx, ry)

		pressed := ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight) ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		SetButton(c, pressed)
	}

	for id, e := range i.gamepads {
		if connected[id] && !inpututil.IsGamepadJustDisconnected(id) {
			continue
		}
		if c, ok := ecs.Get(w, e, component.ControllerComponent); ok {
			logging.L().Info("input: gamepad disconnected", zap.String("id", string(c.ID)))
		}
		ecs.DestroyEntity(w, e)
		delete(i.gamepads, id)
	}
}

func (i *InputSystem) spawn(w *ecs.World, id locomotion.ControllerID, source string) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	err := ecs.Add(w, e, component.ControllerComponent, component.Controller{
		ID:      id,
		Source:  source,
		Grip:    i.hands.Grip,
		Pitch:   0.35,
		Tracked: true,
	})
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("input: add controller %s: %w", id, err)
	}
	return e, nil
}

// SetButton records the aim button level and derives this frame's edges.
func SetButton(c *component.Controller, pressed bool) {
	c.AimStart = pressed && !c.Pressed
	c.Release = !pressed && c.Pressed
	c.Pressed = pressed
}

// Suspend drops the aim button without a release edge, so an aim held when
// input is disabled is never committed.
func Suspend(c *component.Controller) {
	c.Pressed = false
	c.AimStart = false
	c.Release = false
}

// Steer turns the controller by rate radians per second along each input
// axis. Pitch is clamped short of straight up or down.
func Steer(c *component.Controller, yaw, pitch, rate float64, dt time.Duration) {
	step := rate * dt.Seconds()
	c.Yaw += yaw * step
	c.Pitch = mgl64.Clamp(c.Pitch+pitch*step, -maxPitch, maxPitch)
}

// Walk moves the headset inside the square play area centred on the rig.
func Walk(h *component.Head, dx, dz, speed, area float64, dt time.Duration) {
	step := speed * dt.Seconds()
	x := h.Eye.X() + dx*step
	z := h.Eye.Z() + dz*step
	if area > 0 {
		x = mgl64.Clamp(x, -area, area)
		z = mgl64.Clamp(z, -area, area)
	}
	h.Eye = mgl64.Vec3{x, h.Eye.Y(), z}
}
