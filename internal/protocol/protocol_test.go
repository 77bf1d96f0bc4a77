package protocol

import (
	"testing"

	"collision-sim/internal/physics"
	"collision-sim/internal/vector"
)

func TestMessageConstants(t *testing.T) {
	for got, want := range map[string]string{
		MsgWelcome: "welcome",
		MsgState:   "state",
		MsgSet:     "set",
		MsgRespawn: "respawn",
		MsgError:   "error",
	} {
		if got != want {
			t.Fatalf("message constant = %q, want %q", got, want)
		}
	}
}

func TestParseCodec(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "", want: CodecJSON},
		{name: "json", want: CodecJSON},
		{name: "msgpack", want: CodecMsgpack},
		{name: "xml", wantErr: true},
	}
	for _, tt := range tests {
		c, err := ParseCodec(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCodec(%q): expected error", tt.name)
			}
			continue
		}
		if err != nil || c.Name() != tt.want {
			t.Errorf("ParseCodec(%q) = %v, %v; want %s", tt.name, c, err, tt.want)
		}
	}
}

func TestCodecsCarryStatePayload(t *testing.T) {
	w := physics.NewWorld(physics.Config{Width: 800, Height: 600, Restitution: 0.5}, nil)
	w.Add(physics.NewBody(2, 10, vector.New(100, 200), vector.New(3, -4)), physics.Tag{Color: "#ff0000"})
	w.Add(physics.NewBody(1, 15, vector.New(300, 400), vector.New(0, 1)), physics.Tag{Color: "#0000ff"})
	want := NewState(w, 1)

	for _, c := range []Codec{JSON, Msgpack} {
		t.Run(c.Name(), func(t *testing.T) {
			b, err := c.Encode(MsgState, want)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			env, err := c.DecodeEnvelope(b)
			if err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if env.T != MsgState {
				t.Fatalf("type = %q, want %q", env.T, MsgState)
			}
			got, err := DecodePayload[State](env)
			if err != nil {
				t.Fatalf("decode payload: %v", err)
			}
			if got.Restitution != 0.5 || got.Stray != 1 || len(got.Bodies) != 2 {
				t.Fatalf("state = %+v", got)
			}
			if got.Bodies[0] != want.Bodies[0] || got.Bodies[1] != want.Bodies[1] {
				t.Fatalf("bodies = %+v, want %+v", got.Bodies, want.Bodies)
			}
		})
	}
}

func TestNewState(t *testing.T) {
	w := physics.NewWorld(physics.Config{Width: 800, Height: 600, Restitution: 1}, nil)
	w.Add(physics.NewBody(2, 10, vector.New(100, 200), vector.New(3, 4)), physics.Tag{Color: "#0000ff"})
	st := NewState(w, 0)
	if st.KineticEnergy != 25 {
		t.Fatalf("ke = %g, want 25", st.KineticEnergy)
	}
	b := st.Bodies[0]
	if b.ID != 0 || b.X != 100 || b.Y != 200 || b.R != 10 || b.Color != "#0000ff" {
		t.Fatalf("snapshot = %+v", b)
	}
}

func TestSetOptionalFields(t *testing.T) {
	e := 0.25
	for _, c := range []Codec{JSON, Msgpack} {
		b, err := c.Encode(MsgSet, Set{Restitution: &e})
		if err != nil {
			t.Fatalf("%s encode: %v", c.Name(), err)
		}
		env, err := c.DecodeEnvelope(b)
		if err != nil {
			t.Fatalf("%s decode: %v", c.Name(), err)
		}
		set, err := DecodePayload[Set](env)
		if err != nil {
			t.Fatalf("%s payload: %v", c.Name(), err)
		}
		if set.Restitution == nil || *set.Restitution != 0.25 || set.Count != nil {
			t.Fatalf("%s set = %+v", c.Name(), set)
		}
	}
}

func TestEncodeRejectsEmptyInput(t *testing.T) {
	for _, c := range []Codec{JSON, Msgpack} {
		if _, err := c.Encode("", State{}); err == nil {
			t.Errorf("%s: expected error for empty type", c.Name())
		}
		if _, err := c.Encode(MsgState, nil); err == nil {
			t.Errorf("%s: expected error for nil payload", c.Name())
		}
		if _, err := c.DecodeEnvelope(nil); err == nil {
			t.Errorf("%s: expected error for empty message", c.Name())
		}
	}
}

func TestDecodeJSONFromClient(t *testing.T) {
	env, err := JSON.DecodeEnvelope([]byte(`{"t":"set","p":{"count":12}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	set, err := DecodePayload[Set](env)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if set.Count == nil || *set.Count != 12 || set.Restitution != nil {
		t.Fatalf("set = %+v", set)
	}
	if _, err := DecodePayload[Set](Envelope{T: MsgSet}); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
