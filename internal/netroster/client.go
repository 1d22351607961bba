// Package netroster feeds server driven entities into the game over a
// websocket and reports the local player back.
package netroster

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"glyphray/internal/entity"

	"github.com/gorilla/websocket"
)

// PlayerSpriteType is the sprite drawn for other players
const PlayerSpriteType = "P"

// moveThreshold is the distance a player must cover between updates to be
// drawn walking
const moveThreshold = 0.01

type remotePlayer struct {
	PlayerState
	moving bool
}

// Client is a roster feed backed by a websocket connection. Reads and
// writes run on their own goroutines; the game only sees snapshots.
type Client struct {
	name string
	ws   *websocket.Conn
	send chan []byte

	connected atomic.Bool
	sendMu    sync.Mutex
	closed    bool
	done      chan struct{}

	mu           sync.RWMutex
	id           string
	players      map[string]*remotePlayer
	npcs         map[string]NPCState
	npcsReceived bool
}

// NewClient creates a disconnected client. Use Dial to connect.
func NewClient(name string, sendBuffer int) *Client {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	return &Client{
		name:    name,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
		players: make(map[string]*remotePlayer),
		npcs:    make(map[string]NPCState),
	}
}

// Dial connects to a roster server and starts the pumps
func Dial(ctx context.Context, url, name string, sendBuffer int) (*Client, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	c := NewClient(name, sendBuffer)
	c.attach(ws)
	log.Printf("Connected to roster server %s", url)
	return c, nil
}

func (c *Client) attach(ws *websocket.Conn) {
	c.ws = ws
	c.connected.Store(true)
	go c.writePump()
	go c.readPump()
}

// readPump decodes server messages until the connection drops
func (c *Client) readPump() {
	defer func() {
		c.connected.Store(false)
		c.reset()
		c.ws.Close()
		close(c.done)
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Warning: roster connection lost: %v", err)
			}
			return
		}
		if err := c.handleMessage(message); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
}

// writePump sends queued messages until the send channel is closed
func (c *Client) writePump() {
	defer c.ws.Close()

	for message := range c.send {
		w, err := c.ws.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		if _, err := w.Write(message); err != nil {
			return
		}
		if err := w.Close(); err != nil {
			return
		}
	}
	c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (c *Client) handleMessage(data []byte) error {
	var msg ServerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("failed to decode roster message: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch msg.Type {
	case MsgInit:
		c.id = msg.ID
		for id, p := range msg.Players {
			if id == c.id {
				continue
			}
			p.ID = id
			c.players[id] = &remotePlayer{PlayerState: p}
		}
		if msg.NPCs != nil {
			c.updateNPCs(msg.NPCs)
			c.npcsReceived = true
		}
	case MsgNPCInit:
		c.updateNPCs(msg.NPCs)
		c.npcsReceived = true
	case MsgNPCUpdates:
		c.updateNPCs(msg.NPCs)
		if len(c.npcs) > 0 {
			c.npcsReceived = true
		}
	case MsgPlayerJoined:
		if msg.Player != nil && msg.Player.ID != c.id {
			c.players[msg.Player.ID] = &remotePlayer{PlayerState: *msg.Player}
		}
	case MsgPlayerLeft:
		delete(c.players, msg.ID)
	case MsgPlayerMoved:
		if p, ok := c.players[msg.ID]; ok && msg.ID != c.id {
			p.moving = math.Hypot(msg.X-p.X, msg.Y-p.Y) > moveThreshold
			p.X, p.Y, p.Angle, p.LookTimer = msg.X, msg.Y, msg.Angle, msg.LookTimer
		}
	case MsgPlayerChangedLevel:
		if p, ok := c.players[msg.ID]; ok && msg.ID != c.id {
			p.Level = msg.Level
			p.X, p.Y, p.Angle = msg.X, msg.Y, msg.Angle
			p.moving = false
		}
	default:
		return fmt.Errorf("unknown roster message type %q", msg.Type)
	}
	return nil
}

func (c *Client) updateNPCs(npcs []NPCState) {
	for _, npc := range npcs {
		if npc.ID == "" {
			continue
		}
		c.npcs[npc.ID] = npc
	}
}

func (c *Client) reset() {
	c.mu.Lock()
	c.players = make(map[string]*remotePlayer)
	c.npcs = make(map[string]NPCState)
	c.npcsReceived = false
	c.mu.Unlock()
}

// Connected reports whether the connection is up
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// ID returns the id the server assigned, empty before init
func (c *Client) ID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

// NPCs returns the server entities on a level, ordered by id. The bool is
// false until the server has sent NPCs since connecting or the last level
// change.
func (c *Client) NPCs(level string) ([]*entity.Entity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*entity.Entity, 0, len(c.npcs))
	for _, npc := range c.npcs {
		if npc.Level != level {
			continue
		}
		out = append(out, &entity.Entity{
			ID:     npc.ID,
			Type:   npc.Name,
			X:      npc.X,
			Y:      npc.Y,
			R:      npc.R,
			Moving: npc.Move,
			Speed:  npc.Speed,
			Remote: true,
		})
	}
	sortByID(out)
	return out, c.npcsReceived
}

// Players returns the other players on a level, ordered by id
func (c *Client) Players(level string) []*entity.Entity {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*entity.Entity, 0, len(c.players))
	for _, p := range c.players {
		if p.Level != level {
			continue
		}
		out = append(out, &entity.Entity{
			ID:     p.ID,
			Type:   PlayerSpriteType,
			X:      p.X,
			Y:      p.Y,
			R:      p.Angle,
			Moving: p.moving,
			Remote: true,
		})
	}
	sortByID(out)
	return out
}

// Snapshot returns the NPCs and players on a level as detached entities
func (c *Client) Snapshot(level string) []*entity.Entity {
	npcs, _ := c.NPCs(level)
	return append(npcs, c.Players(level)...)
}

func sortByID(entities []*entity.Entity) {
	sort.Slice(entities, func(i, j int) bool {
		return entities[i].ID < entities[j].ID
	})
}

// SendPosition queues a position update. Updates are dropped while the
// send buffer is full.
func (c *Client) SendPosition(x, y, angle, lookTimer float64, level string) {
	c.enqueue(PositionUpdate{
		Type:       MsgUpdatePosition,
		X:          x,
		Y:          y,
		Angle:      angle,
		LookTimer:  lookTimer,
		Level:      level,
		PlayerName: c.name,
	})
}

// SendLevelChange announces a level change and forgets the old level's NPCs
func (c *Client) SendLevelChange(level string) {
	c.mu.Lock()
	c.npcs = make(map[string]NPCState)
	c.npcsReceived = false
	c.mu.Unlock()

	c.enqueue(LevelChange{Type: MsgChangeLevel, Level: level, PlayerName: c.name})
}

func (c *Client) enqueue(msg interface{}) {
	if !c.Connected() {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Warning: failed to encode roster message: %v", err)
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// Close shuts the connection down and waits for the reader to stop
func (c *Client) Close() error {
	c.sendMu.Lock()
	if !c.closed {
		c.closed = true
		c.connected.Store(false)
		close(c.send)
	}
	c.sendMu.Unlock()

	if c.ws == nil {
		return nil
	}
	<-c.done
	return nil
}
