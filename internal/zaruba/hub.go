package zaruba

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Command is one inbound player instruction. The JSON shape doubles as the
// websocket wire format.
type Command struct {
	Type      string  `json:"type"` // place | remove | select | arm | start | reset | resolve
	Key       string  `json:"key,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	PackID    int64   `json:"pack_id,omitempty"`
	MachineID int64   `json:"machine_id,omitempty"`
	SourceID  int64   `json:"source_id,omitempty"`

	player *Player
}

// Hub owns one Game and is its only writer. Registration, commands, stat
// queries and the tick all arrive on channels serviced by a single select
// loop, so the engine itself needs no locks.
type Hub struct {
	game     *Game
	tick     time.Duration
	players  map[*Player]bool
	nextTeam int

	Register   chan *Player
	Unregister chan *Player
	Commands   chan Command
	queries    chan chan BattleStats

	// OnBattleOver receives every finished round together with the players
	// who were connected when it ended. Invoked on its own goroutine so a
	// slow persistence call cannot stall the tick.
	OnBattleOver func(o Outcome, players map[*Player]bool)

	log *zap.Logger
}

func NewHub(game *Game, tickRateHz int, log *zap.Logger) *Hub {
	if tickRateHz <= 0 {
		tickRateHz = 30
	}
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		game:       game,
		tick:       time.Second / time.Duration(tickRateHz),
		players:    make(map[*Player]bool),
		Register:   make(chan *Player),
		Unregister: make(chan *Player),
		Commands:   make(chan Command, 64),
		queries:    make(chan chan BattleStats),
		log:        log,
	}
	game.OnOutcome = h.reportOutcome
	return h
}

// Run services the hub until the process exits. Everything that touches the
// game happens here.
func (h *Hub) Run() {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case p := <-h.Register:
			h.players[p] = true
			p.Team = h.nextTeam
			h.nextTeam = (h.nextTeam + 1) % 2
			h.log.Info("player joined",
				zap.String("player", p.ID),
				zap.String("user", p.UserID),
				zap.Int("team", p.Team))
			h.sendTeam(p)

		case p := <-h.Unregister:
			if _, ok := h.players[p]; ok {
				delete(h.players, p)
				close(p.Send)
			}
			h.log.Info("player left", zap.String("player", p.ID))

		case cmd := <-h.Commands:
			h.apply(cmd)

		case reply := <-h.queries:
			reply <- h.game.Stats()

		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now
			h.game.Tick(float64(now.UnixMilli()), float64(delta)/float64(time.Millisecond))
			h.broadcast()
		}
	}
}

// apply dispatches one player command. Failed operations are silent no-ops
// in the engine; the next state frame shows the player nothing changed.
func (h *Hub) apply(cmd Command) {
	switch cmd.Type {
	case "place":
		team := TeamAttacker
		if cmd.player != nil {
			team = cmd.player.Team
		}
		h.game.PlacePack(cmd.X, cmd.Y, team, cmd.Key)
	case "remove":
		h.game.RemovePack(cmd.PackID)
	case "select":
		h.game.SelectPack(cmd.X, cmd.Y)
	case "arm":
		h.game.ArmWarMachine(cmd.MachineID, cmd.SourceID)
	case "start":
		h.game.StartBattle()
	case "reset":
		h.game.Reset()
	case "resolve":
		h.game.AutoResolve(ResolveConfig{})
	default:
		h.log.Debug("unknown command", zap.String("type", cmd.Type))
	}
}

// QueryStats round-trips a snapshot request through the hub loop, keeping
// HTTP readers out of the game state.
func (h *Hub) QueryStats() BattleStats {
	reply := make(chan BattleStats, 1)
	h.queries <- reply
	return <-reply
}

func (h *Hub) reportOutcome(o Outcome) {
	h.log.Info("battle over",
		zap.String("winner", o.Winner),
		zap.String("mode", o.Mode),
		zap.Float64("duration_ms", o.DurationMs))
	if h.OnBattleOver == nil {
		return
	}
	players := make(map[*Player]bool, len(h.players))
	for p := range h.players {
		players[p] = true
	}
	go h.OnBattleOver(o, players)
}

type stateFrame struct {
	Type     string   `json:"type"`
	Phase    Phase    `json:"phase"`
	TimeMs   float64  `json:"time_ms"`
	Packs    []*Pack  `json:"packs"`
	Units    []*Unit  `json:"units"`
	Selected int64    `json:"selected,omitempty"`
	Outcome  *Outcome `json:"outcome,omitempty"`
}

func (h *Hub) broadcast() {
	frame := stateFrame{
		Type:     "state",
		Phase:    h.game.Phase,
		TimeMs:   h.game.BattleMs(),
		Packs:    h.game.Packs(),
		Units:    h.game.Units(),
		Selected: h.game.Selected(),
		Outcome:  h.game.Outcome,
	}
	data, err := json.Marshal(frame)
	if err != nil {
		h.log.Error("marshal state frame", zap.Error(err))
		return
	}
	for p := range h.players {
		select {
		case p.Send <- data:
		default:
			close(p.Send)
			delete(h.players, p)
		}
	}
}

func (h *Hub) sendTeam(p *Player) {
	data, _ := json.Marshal(map[string]any{
		"type":   "team",
		"team":   p.Team,
		"player": p.ID,
	})
	select {
	case p.Send <- data:
	default:
	}
}
