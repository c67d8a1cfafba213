package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerarena/cmd/pokerarena/shared"
	"github.com/lox/pokerarena/internal/game"
	"github.com/lox/pokerarena/internal/protocol"
	"github.com/lox/pokerarena/poker"
)

// BotCmd runs one or more built-in bots against a table. They are
// table fillers, not contenders: a calling strategy, a seeded random
// one, and a tight one that plays its preflop tier. Each bot exits
// when the match ends.
type BotCmd struct {
	URL      string `kong:"default='ws://localhost:8080/ws',help='Server endpoint to dial'"`
	Team     string `kong:"default='bot',help='Team name; with --count above 1 bots are named team-1..N'"`
	JoinCode string `kong:"help='Join code the table requires'"`
	Count    int    `kong:"default='1',help='Number of bots to run'"`
	Strategy string `kong:"default='caller',help='Decision strategy: caller, random or tight'"`
	Seed     int64  `kong:"help='Seed for the random strategy'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *BotCmd) Run() error {
	switch c.Strategy {
	case "caller", "random", "tight":
	default:
		return fmt.Errorf("strategy must be caller, random or tight, got %q", c.Strategy)
	}

	logger := shared.SetupLogger("info", c.Debug)
	ctx := shared.SetupSignalHandler(logger)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < c.Count; i++ {
		team := c.Team
		if c.Count > 1 {
			team = fmt.Sprintf("%s-%d", c.Team, i+1)
		}
		b := &tableBot{
			url:      c.URL,
			team:     team,
			joinCode: c.JoinCode,
			strategy: c.Strategy,
			rng:      rand.New(rand.NewSource(seed + int64(i))),
			logger:   logger.WithPrefix(team),
		}
		g.Go(func() error {
			return b.run(ctx)
		})
	}
	return g.Wait()
}

type tableBot struct {
	url      string
	team     string
	joinCode string
	strategy string
	rng      *rand.Rand
	logger   *log.Logger
}

func (b *tableBot) run(ctx context.Context) error {
	u, err := url.Parse(b.url)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	// Ensure WebSocket scheme
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		// Already correct
	default:
		u.Scheme = "ws"
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("connect %s: %w", u.String(), err)
	}
	defer conn.Close()

	hello := struct {
		Type     string `json:"type"`
		V        int    `json:"v"`
		Team     string `json:"team"`
		JoinCode string `json:"join_code,omitempty"`
	}{protocol.TypeHello, protocol.Version, b.team, b.joinCode}
	if err := conn.WriteJSON(hello); err != nil {
		return fmt.Errorf("send hello: %w", err)
	}

	// Unblock the read loop when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return err
		}
		finished, err := b.handle(conn, data)
		if err != nil {
			return err
		}
		if finished {
			return nil
		}
	}
}

// handle reacts to one server frame. It returns true once the match is
// over and the bot should disconnect.
func (b *tableBot) handle(conn *websocket.Conn, data []byte) (bool, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return false, fmt.Errorf("decode frame: %w", err)
	}

	switch head.Type {
	case protocol.TypeWelcome:
		var f protocol.Welcome
		if err := json.Unmarshal(data, &f); err != nil {
			return false, err
		}
		b.logger.Info("Seated", "table", f.TableID, "seat", f.Seat)

	case protocol.TypeAct:
		var f protocol.Act
		if err := json.Unmarshal(data, &f); err != nil {
			return false, err
		}
		action, amount := b.decide(&f)
		reply := struct {
			Type   string `json:"type"`
			V      int    `json:"v"`
			HandID string `json:"hand_id"`
			Action string `json:"action"`
			Amount *int   `json:"amount,omitempty"`
		}{protocol.TypeAction, protocol.Version, f.HandID, action, amount}
		b.logger.Debug("Acting", "hand", f.HandID, "action", action)
		if err := conn.WriteJSON(reply); err != nil {
			return false, fmt.Errorf("send action: %w", err)
		}

	case protocol.TypeError:
		var f protocol.ErrorFrame
		if err := json.Unmarshal(data, &f); err != nil {
			return false, err
		}
		b.logger.Warn("Server rejected a frame", "code", f.Code, "msg", f.Msg)

	case protocol.TypeMatchEnd:
		var f protocol.MatchEnd
		if err := json.Unmarshal(data, &f); err != nil {
			return false, err
		}
		if f.Winner != nil {
			b.logger.Info("Match over", "winner", f.Winner.Team, "seat", f.Winner.Seat)
		} else {
			b.logger.Info("Match ended without a winner")
		}
		return true, nil
	}
	return false, nil
}

// decide picks a move from the prompt's legal set.
func (b *tableBot) decide(act *protocol.Act) (string, *int) {
	switch b.strategy {
	case "random":
		return b.decideRandom(act)
	case "tight":
		return b.decideTight(act)
	}
	return checkOrCall(act)
}

func (b *tableBot) decideRandom(act *protocol.Act) (string, *int) {
	if len(act.Legal) == 0 {
		return string(game.ActionFold), nil
	}
	pick := act.Legal[b.rng.Intn(len(act.Legal))]
	if pick != string(game.ActionRaiseTo) {
		return pick, nil
	}
	if act.MinRaiseTo == nil || act.MaxRaiseTo == nil {
		return string(game.ActionFold), nil
	}
	amount := *act.MinRaiseTo
	if span := *act.MaxRaiseTo - *act.MinRaiseTo; span > 0 {
		amount += b.rng.Intn(span + 1)
	}
	return pick, &amount
}

// decideTight opens its premium hands, calls with strength, limps
// playable hands when cheap and folds the rest. After the flop it
// turns into a calling station.
func (b *tableBot) decideTight(act *protocol.Act) (string, *int) {
	if len(act.Community) > 0 {
		return checkOrCall(act)
	}

	switch poker.PreflopTierOfLabels(act.You.Hole) {
	case poker.TierPremium:
		if hasAction(act.Legal, game.ActionRaiseTo) && act.MinRaiseTo != nil {
			amount := *act.MinRaiseTo
			return string(game.ActionRaiseTo), &amount
		}
		return checkOrCall(act)
	case poker.TierStrong:
		return checkOrCall(act)
	case poker.TierPlayable:
		if hasAction(act.Legal, game.ActionCheck) {
			return string(game.ActionCheck), nil
		}
		if hasAction(act.Legal, game.ActionCall) && act.You.ToCall <= act.Table.BB {
			return string(game.ActionCall), nil
		}
		return string(game.ActionFold), nil
	default:
		if hasAction(act.Legal, game.ActionCheck) {
			return string(game.ActionCheck), nil
		}
		return string(game.ActionFold), nil
	}
}

// checkOrCall takes the passive line, folding only when forced.
func checkOrCall(act *protocol.Act) (string, *int) {
	for _, a := range []game.ActionType{game.ActionCheck, game.ActionCall} {
		if hasAction(act.Legal, a) {
			return string(a), nil
		}
	}
	return string(game.ActionFold), nil
}

func hasAction(legal []string, t game.ActionType) bool {
	for _, a := range legal {
		if a == string(t) {
			return true
		}
	}
	return false
}
