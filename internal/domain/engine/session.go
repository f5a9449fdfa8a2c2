package engine

import (
	"go.uber.org/zap"

	"github.com/karl5252/beastbazaar/internal/domain/farm"
	"github.com/karl5252/beastbazaar/internal/domain/trade"
)

// TurnState is reset at the start of every turn.
type TurnState struct {
	HasRolled    bool `json:"has_rolled"`
	HasExchanged bool `json:"has_exchanged"`
}

// Session owns the players, the bank and the trade ledger of one game.
// It is not safe for concurrent use; callers serialize actions.
type Session struct {
	rules   farm.Rules
	players []*farm.Player
	bank    *farm.Player
	current int
	turn    int
	state   TurnState
	trades  *trade.Ledger
	winner  *int
	logger  *zap.Logger
}

type Option func(*sessionOptions)

type sessionOptions struct {
	logger   *zap.Logger
	offerIDs func() string
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// WithOfferIDs replaces the trade offer id generator.
func WithOfferIDs(fn func() string) Option {
	return func(o *sessionOptions) {
		o.offerIDs = fn
	}
}

func New(rules farm.Rules, opts ...Option) *Session {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if rules.Rates == nil {
		rules.Rates = farm.DefaultRates()
	}
	return &Session{
		rules:  rules,
		bank:   farm.NewBank(rules.BankStart),
		trades: trade.NewLedger(trade.WithIDGenerator(o.offerIDs)),
		logger: o.logger,
	}
}

// AddPlayer seats a player at the next index.
func (s *Session) AddPlayer(name string) *farm.Player {
	p := farm.NewPlayer(name, len(s.players))
	s.players = append(s.players, p)
	return p
}

func (s *Session) StartTurn() {
	s.state = TurnState{}
}

type EndTurnResult struct {
	WinnerIndex        *int `json:"winner_index"`
	CurrentPlayerIndex int  `json:"current_player_index"`
	TurnNumber         int  `json:"turn_number"`
	TradesPruned       int  `json:"trades_pruned"`
}

// EndTurn declares the current player the winner if they qualify.
// Otherwise it passes the turn on and prunes stale trade offers.
func (s *Session) EndTurn() (EndTurnResult, error) {
	if len(s.players) == 0 {
		return EndTurnResult{}, farm.ReasonNoPlayers
	}
	if s.winner == nil && CheckVictory(s.players[s.current].Herd) {
		winner := s.current
		s.winner = &winner
		s.logger.Info("winner declared",
			zap.Int("player_index", winner),
			zap.String("player_name", s.players[winner].Name),
			zap.Int("turn", s.turn),
		)
	}
	if s.winner != nil {
		winner := *s.winner
		return EndTurnResult{WinnerIndex: &winner, CurrentPlayerIndex: s.current, TurnNumber: s.turn}, nil
	}

	s.current = (s.current + 1) % len(s.players)
	s.turn++
	s.StartTurn()
	pruned := s.PruneTrades()
	if pruned > 0 {
		s.logger.Debug("trade offers pruned", zap.Int("count", pruned), zap.Int("turn", s.turn))
	}
	return EndTurnResult{CurrentPlayerIndex: s.current, TurnNumber: s.turn, TradesPruned: pruned}, nil
}

// CheckVictory reports whether a herd holds at least one of every core kind.
func CheckVictory(h farm.Herd) bool {
	for _, k := range farm.CoreKinds {
		if h.Get(k) < 1 {
			return false
		}
	}
	return true
}

func (s *Session) CurrentPlayer() *farm.Player {
	if len(s.players) == 0 {
		return nil
	}
	return s.players[s.current]
}

func (s *Session) CurrentIndex() int {
	return s.current
}

func (s *Session) Player(index int) (*farm.Player, bool) {
	if index < 0 || index >= len(s.players) {
		return nil, false
	}
	return s.players[index], true
}

func (s *Session) Players() []*farm.Player {
	out := make([]*farm.Player, len(s.players))
	copy(out, s.players)
	return out
}

func (s *Session) Bank() *farm.Player {
	return s.bank
}

func (s *Session) Turn() int {
	return s.turn
}

func (s *Session) TurnState() TurnState {
	return s.state
}

func (s *Session) Rules() farm.Rules {
	return s.rules
}

func (s *Session) Winner() (int, bool) {
	if s.winner == nil {
		return 0, false
	}
	return *s.winner, true
}

func (s *Session) herd(index int) *farm.Herd {
	if index == farm.BankIndex {
		return &s.bank.Herd
	}
	if p, ok := s.Player(index); ok {
		return &p.Herd
	}
	return nil
}

func (s *Session) guardTurn(playerIndex int) error {
	if s.winner != nil {
		return farm.ReasonGameOver
	}
	if len(s.players) == 0 {
		return farm.ReasonNoPlayers
	}
	if playerIndex != s.current {
		return farm.ReasonNotYourTurn
	}
	return nil
}
