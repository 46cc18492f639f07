package components

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrBadSnapshot = errors.New("bad body snapshot")

// BodySnapshot captures every piece of KinematicBody state that influences
// future steps. Restoring it and stepping again reproduces the same
// trajectory bit for bit.
type BodySnapshot struct {
	Position     rl.Vector3 `msgpack:"pos"`
	Velocity     rl.Vector3 `msgpack:"vel"`
	Provisional  rl.Vector3 `msgpack:"pvel"`
	Impulse      rl.Vector3 `msgpack:"imp"`
	External     rl.Vector3 `msgpack:"ext"`
	Control      rl.Vector3 `msgpack:"ctl"`
	DragRate     float32    `msgpack:"drag"`
	FalloffTime  float32    `msgpack:"fall"`
	Grounded     bool       `msgpack:"gnd"`
	GroundNormal rl.Vector3 `msgpack:"gn"`
	Skin         rl.Vector2 `msgpack:"skin"`
	Frozen       bool       `msgpack:"frz"`
}

// Snapshot captures the body state and the owner position.
func (b *KinematicBody) Snapshot() BodySnapshot {
	s := BodySnapshot{
		Velocity:     b.velocity,
		Provisional:  b.provisional,
		Impulse:      b.impulse,
		External:     b.external,
		Control:      b.control,
		DragRate:     b.dragRate,
		FalloffTime:  b.falloffTime,
		Grounded:     b.grounded,
		GroundNormal: b.groundNormal,
		Skin:         b.skin,
		Frozen:       b.frozen,
	}
	if g := b.GetGameObject(); g != nil {
		s.Position = g.Transform.Position
	}
	return s
}

// Restore overwrites the body state. Grounded listeners are not notified.
func (b *KinematicBody) Restore(s BodySnapshot) {
	b.velocity = s.Velocity
	b.provisional = s.Provisional
	b.impulse = s.Impulse
	b.external = s.External
	b.control = s.Control
	b.dragRate = s.DragRate
	b.falloffTime = s.FalloffTime
	b.grounded = s.Grounded
	b.groundNormal = s.GroundNormal
	b.skin = s.Skin
	b.frozen = s.Frozen
	if g := b.GetGameObject(); g != nil {
		g.Transform.Position = s.Position
	}
}

// EncodeSnapshot packs s with msgpack.
func EncodeSnapshot(s BodySnapshot) ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("encode body snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot reverses EncodeSnapshot. Malformed input wraps ErrBadSnapshot.
func DecodeSnapshot(data []byte) (BodySnapshot, error) {
	var s BodySnapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return BodySnapshot{}, fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}
	return s, nil
}

// Digest hashes the encoded snapshot. Equal digests mean equal state.
func (s BodySnapshot) Digest() uint64 {
	data, err := EncodeSnapshot(s)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}
