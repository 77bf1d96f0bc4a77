package protocol

import "collision-sim/internal/physics"

// Welcome is sent once after a client connects.
type Welcome struct {
	ClientID    string  `json:"clientId" msgpack:"clientId"`
	Width       float64 `json:"width" msgpack:"width"`
	Height      float64 `json:"height" msgpack:"height"`
	TickHz      int     `json:"tickHz" msgpack:"tickHz"`
	BroadcastHz int     `json:"broadcastHz" msgpack:"broadcastHz"`
	Codec       string  `json:"codec" msgpack:"codec"`
}

type State struct {
	Tick          int            `json:"tick" msgpack:"tick"`
	Restitution   float64        `json:"e" msgpack:"e"`
	KineticEnergy float64        `json:"ke" msgpack:"ke"`
	Stray         int            `json:"stray,omitempty" msgpack:"stray,omitempty"`
	Bodies        []BodySnapshot `json:"bodies" msgpack:"bodies"`
}

type BodySnapshot struct {
	ID    int     `json:"id" msgpack:"id"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	VX    float64 `json:"vx" msgpack:"vx"`
	VY    float64 `json:"vy" msgpack:"vy"`
	R     float64 `json:"r" msgpack:"r"`
	Color string  `json:"color,omitempty" msgpack:"color,omitempty"`
}

type Error struct {
	Message string `json:"message" msgpack:"message"`
}

// NewState snapshots the world. stray is the stray count of the last step.
func NewState(w *physics.World, stray int) State {
	bodies := w.Bodies()
	tags := w.Tags()
	st := State{
		Tick:          w.Tick(),
		Restitution:   w.Restitution(),
		KineticEnergy: w.TotalKineticEnergy(),
		Stray:         stray,
		Bodies:        make([]BodySnapshot, len(bodies)),
	}
	for i, b := range bodies {
		st.Bodies[i] = BodySnapshot{
			ID:    i,
			X:     b.Position.X(),
			Y:     b.Position.Y(),
			VX:    b.Velocity.X(),
			VY:    b.Velocity.Y(),
			R:     b.Radius,
			Color: tags[i].Color,
		}
	}
	return st
}
