package protocol

// Set changes simulation parameters. Nil fields are left unchanged.
type Set struct {
	Restitution *float64 `json:"e,omitempty" msgpack:"e,omitempty"`
	Count       *int     `json:"count,omitempty" msgpack:"count,omitempty"`
}

// Respawn regenerates the bodies. Seed 0 keeps the configured seed.
type Respawn struct {
	Seed int64 `json:"seed,omitempty" msgpack:"seed,omitempty"`
}
