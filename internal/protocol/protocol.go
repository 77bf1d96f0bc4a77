package protocol

const (
	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgSet     = "set"
	MsgRespawn = "respawn"
	MsgError   = "error"
)

const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// Envelope is one framed message: a type tag and the still-encoded payload.
type Envelope struct {
	T string
	P []byte

	codec Codec
}
