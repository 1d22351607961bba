package netroster

// Message types sent by the server
const (
	MsgInit               = "init"
	MsgNPCUpdates         = "npc_updates"
	MsgNPCInit            = "npc_init"
	MsgPlayerJoined       = "player_joined"
	MsgPlayerMoved        = "player_moved"
	MsgPlayerLeft         = "player_left"
	MsgPlayerChangedLevel = "player_changed_level"
)

// Message types sent by the client
const (
	MsgUpdatePosition = "update_position"
	MsgChangeLevel    = "change_level"
)

// PlayerState is another player as the server reports it
type PlayerState struct {
	ID         string  `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Angle      float64 `json:"angle"`
	LookTimer  float64 `json:"lookTimer"`
	Level      string  `json:"level"`
	PlayerName string  `json:"playerName,omitempty"`
}

// NPCState is a server driven entity. Name selects the sprite.
type NPCState struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Level string  `json:"level"`
	Move  bool    `json:"move"`
	Speed float64 `json:"speed,omitempty"`
}

// ServerMessage is the union of everything the server sends
type ServerMessage struct {
	Type      string                 `json:"type"`
	ID        string                 `json:"id,omitempty"`
	Players   map[string]PlayerState `json:"players,omitempty"`
	NPCs      []NPCState             `json:"npcs,omitempty"`
	Player    *PlayerState           `json:"player,omitempty"`
	Level     string                 `json:"level,omitempty"`
	X         float64                `json:"x,omitempty"`
	Y         float64                `json:"y,omitempty"`
	Angle     float64                `json:"angle,omitempty"`
	LookTimer float64                `json:"lookTimer,omitempty"`
}

// PositionUpdate is sent once per tick while connected
type PositionUpdate struct {
	Type       string  `json:"type"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Angle      float64 `json:"angle"`
	LookTimer  float64 `json:"lookTimer"`
	Level      string  `json:"level"`
	PlayerName string  `json:"playerName"`
}

// LevelChange announces the level the player entered
type LevelChange struct {
	Type       string `json:"type"`
	Level      string `json:"level"`
	PlayerName string `json:"playerName"`
}
