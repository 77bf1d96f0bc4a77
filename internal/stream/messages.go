package stream

// Conn is a connected client as the room sees it.
type Conn interface {
	Send([]byte) error
	Close() error
}

// Join is issued once a client connection is established.
type Join struct {
	Conn  Conn
	Reply chan<- JoinResult
}

type JoinResult struct {
	ClientID string
}

// Message carries one raw frame read from a client.
type Message struct {
	ClientID string
	Data     []byte
}

// Leave is issued on disconnect.
type Leave struct {
	ClientID string
}
