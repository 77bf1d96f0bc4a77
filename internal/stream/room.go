package stream

import (
	"fmt"
	"sync"
	"time"

	"collision-sim/internal/physics"
	"collision-sim/internal/protocol"
	"collision-sim/internal/spawn"
)

// MaxCount caps the body count a client may request.
const MaxCount = 1000

// Logger receives room events and per-second stats.
type Logger interface {
	Logf(format string, args ...any)
}

// Options configures a Room.
type Options struct {
	TickHz      int
	BroadcastHz int
	Dt          float64
	World       physics.Config
	Spawn       spawn.Options
	Codec       protocol.Codec
}

// Room owns one world and steps it on a ticker. Every mutation arrives through Inbox and is
// applied on the Run goroutine, so the world is never shared.
type Room struct {
	Inbox          chan any
	tickHz         int
	broadcastEvery int
	dt             float64
	world          *physics.World
	spawn          spawn.Options
	codec          protocol.Codec
	clients        map[string]Conn
	nextID         int
	log            Logger
	quit           chan struct{}
	stopOnce       sync.Once

	lastStray int
	window    windowStats
}

type windowStats struct {
	ticks, collisions, coincident, visits int
}

// New builds the world from opts and spawns the initial bodies.
func New(opts Options, log Logger) *Room {
	if opts.TickHz <= 0 {
		opts.TickHz = 60
	}
	if opts.BroadcastHz <= 0 || opts.BroadcastHz > opts.TickHz {
		opts.BroadcastHz = opts.TickHz
	}
	if opts.Codec == nil {
		opts.Codec = protocol.JSON
	}
	if log == nil {
		log = nopLogger{}
	}
	broadcastEvery := opts.TickHz / opts.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	r := &Room{
		Inbox:          make(chan any, 256),
		tickHz:         opts.TickHz,
		broadcastEvery: broadcastEvery,
		dt:             opts.Dt,
		world:          physics.NewWorld(opts.World, log),
		spawn:          opts.Spawn,
		codec:          opts.Codec,
		clients:        make(map[string]Conn),
		nextID:         1,
		log:            log,
		quit:           make(chan struct{}),
	}
	r.respawn(0)
	return r
}

type nopLogger struct{}

func (nopLogger) Logf(string, ...any) {}

// Codec returns the codec frames are encoded with.
func (r *Room) Codec() protocol.Codec { return r.codec }

// Stop ends Run. It is safe to call more than once.
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
}

// Done is closed once Stop has been called.
func (r *Room) Done() <-chan struct{} { return r.quit }

// Send queues cmd for the Run goroutine. It returns false once the room is stopped.
func (r *Room) Send(cmd any) bool {
	select {
	case r.Inbox <- cmd:
		return true
	case <-r.quit:
		return false
	}
}

func (r *Room) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickHz))
	defer ticker.Stop()
	defer r.closeAll()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.step()
		}
	}
}

func (r *Room) step() {
	report := r.world.Step(r.dt)
	r.lastStray = len(report.Stray)
	r.window.ticks++
	r.window.collisions += report.Collisions
	r.window.coincident += report.Coincident
	r.window.visits += report.Index.Visits

	if report.Tick%r.broadcastEvery == 0 {
		r.broadcastState()
	}
	if r.window.ticks >= r.tickHz {
		r.log.Logf("tick=%d bodies=%d clients=%d collisions=%d coincident=%d visits=%d stray=%d",
			report.Tick, r.world.Len(), len(r.clients), r.window.collisions, r.window.coincident, r.window.visits, r.lastStray)
		r.window = windowStats{}
	}
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		id := fmt.Sprintf("c%d", r.nextID)
		r.nextID++
		r.clients[id] = c.Conn
		w, h := r.world.Size()
		welcome := protocol.Welcome{
			ClientID:    id,
			Width:       w,
			Height:      h,
			TickHz:      r.tickHz,
			BroadcastHz: r.tickHz / r.broadcastEvery,
			Codec:       r.codec.Name(),
		}
		r.sendTo(id, protocol.MsgWelcome, welcome)
		r.sendTo(id, protocol.MsgState, protocol.NewState(r.world, r.lastStray))
		r.log.Logf("client %s joined", id)
		c.Reply <- JoinResult{ClientID: id}
	case Message:
		if _, ok := r.clients[c.ClientID]; !ok {
			return
		}
		if err := r.handleMessage(c.Data); err != nil {
			r.log.Logf("client %s: %v", c.ClientID, err)
			r.sendTo(c.ClientID, protocol.MsgError, protocol.Error{Message: err.Error()})
		}
	case Leave:
		r.removeClient(c.ClientID)
	}
}

func (r *Room) handleMessage(data []byte) error {
	env, err := r.codec.DecodeEnvelope(data)
	if err != nil {
		return err
	}
	switch env.T {
	case protocol.MsgSet:
		set, err := protocol.DecodePayload[protocol.Set](env)
		if err != nil {
			return err
		}
		if set.Restitution != nil {
			r.world.SetRestitution(physics.ClampRestitution(*set.Restitution))
		}
		if set.Count != nil {
			r.spawn.Count = min(max(*set.Count, 0), MaxCount)
			r.respawn(0)
		}
	case protocol.MsgRespawn:
		rs, err := protocol.DecodePayload[protocol.Respawn](env)
		if err != nil {
			return err
		}
		r.respawn(rs.Seed)
	default:
		return fmt.Errorf("unknown message type %q", env.T)
	}
	return nil
}

// respawn regenerates the bodies. seed 0 uses the configured seed.
func (r *Room) respawn(seed int64) {
	opts := r.spawn
	if seed != 0 {
		opts.Seed = seed
	}
	bodies, tags := spawn.Generate(opts)
	r.world.Respawn(bodies, tags)
	r.log.Logf("spawned %d bodies", len(bodies))
}

func (r *Room) sendTo(id, t string, payload any) {
	c, ok := r.clients[id]
	if !ok {
		return
	}
	b, err := r.codec.Encode(t, payload)
	if err != nil {
		r.log.Logf("encode %s: %v", t, err)
		return
	}
	if err := c.Send(b); err != nil {
		r.removeClient(id)
	}
}

func (r *Room) broadcastState() {
	if len(r.clients) == 0 {
		return
	}
	b, err := r.codec.Encode(protocol.MsgState, protocol.NewState(r.world, r.lastStray))
	if err != nil {
		r.log.Logf("encode state: %v", err)
		return
	}

	var failed []string
	for id, c := range r.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.removeClient(id)
	}
}

func (r *Room) removeClient(id string) {
	c, ok := r.clients[id]
	if !ok {
		return
	}
	_ = c.Close()
	delete(r.clients, id)
	r.log.Logf("client %s left", id)
}

func (r *Room) closeAll() {
	for id := range r.clients {
		r.removeClient(id)
	}
}
