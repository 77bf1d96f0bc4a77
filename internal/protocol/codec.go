package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec turns envelopes and payloads into bytes on the wire.
type Codec interface {
	Name() string
	// Binary reports whether frames should be sent as binary websocket messages.
	Binary() bool
	Encode(t string, payload any) ([]byte, error)
	DecodeEnvelope(b []byte) (Envelope, error)
	unmarshal(b []byte, v any) error
}

// ParseCodec returns the codec registered under name ("json" or "msgpack").
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "", CodecJSON:
		return JSON, nil
	case CodecMsgpack:
		return Msgpack, nil
	}
	return nil, fmt.Errorf("unknown codec %q", name)
}

var (
	JSON    Codec = jsonCodec{}
	Msgpack Codec = msgpackCodec{}
)

type jsonCodec struct{}

type jsonEnvelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}

func (jsonCodec) Name() string { return CodecJSON }
func (jsonCodec) Binary() bool { return false }

func (jsonCodec) Encode(t string, payload any) ([]byte, error) {
	if err := checkEncode(t, payload); err != nil {
		return nil, err
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonEnvelope{T: t, P: pb})
}

func (jsonCodec) DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode envelope: empty message")
	}
	var e jsonEnvelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return Envelope{T: e.T, P: e.P, codec: JSON}, nil
}

func (jsonCodec) unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

type msgpackCodec struct{}

type msgpackEnvelope struct {
	T string             `msgpack:"t"`
	P msgpack.RawMessage `msgpack:"p"`
}

func (msgpackCodec) Name() string { return CodecMsgpack }
func (msgpackCodec) Binary() bool { return true }

func (msgpackCodec) Encode(t string, payload any) ([]byte, error) {
	if err := checkEncode(t, payload); err != nil {
		return nil, err
	}
	pb, err := msgpack.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(msgpackEnvelope{T: t, P: pb})
}

func (msgpackCodec) DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode envelope: empty message")
	}
	var e msgpackEnvelope
	if err := msgpack.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return Envelope{T: e.T, P: []byte(e.P), codec: Msgpack}, nil
}

func (msgpackCodec) unmarshal(b []byte, v any) error { return msgpack.Unmarshal(b, v) }

func checkEncode(t string, payload any) error {
	if t == "" {
		return fmt.Errorf("encode envelope: empty type")
	}
	if payload == nil {
		return fmt.Errorf("encode envelope %q: nil payload", t)
	}
	return nil
}

// DecodePayload decodes env's payload into a T with the codec the envelope was read with.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	c := env.codec
	if c == nil {
		c = JSON
	}
	if err := c.unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("decode %q payload: %w", env.T, err)
	}
	return out, nil
}
