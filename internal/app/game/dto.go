package game

import (
	"github.com/karl5252/beastbazaar/internal/app/ports"
	"github.com/karl5252/beastbazaar/internal/domain/engine"
	"github.com/karl5252/beastbazaar/internal/domain/farm"
	"github.com/karl5252/beastbazaar/internal/domain/trade"
)

const (
	ActionRoll        = "roll"
	ActionExchange    = "exchange"
	ActionPostTrade   = "post_trade"
	ActionAcceptTrade = "accept_trade"
	ActionSettleTrade = "settle_trade"
	ActionRejectTrade = "reject_trade"
	ActionEndTurn     = "end_turn"
)

const BankDisplayName = "Bank"

// Result is returned by every action. On failure only OK, Reason,
// Message and Action are set.
type Result struct {
	OK        bool                  `json:"ok"`
	Reason    string                `json:"reason,omitempty"`
	Message   string                `json:"message,omitempty"`
	Action    string                `json:"action"`
	Dice      *ports.DicePair       `json:"dice_results,omitempty"`
	Roll      *engine.RollResult    `json:"roll,omitempty"`
	Exchanged *farm.ExchangeResult  `json:"exchanged,omitempty"`
	RequestID string                `json:"request_id,omitempty"`
	Trade     *trade.Offer          `json:"trade,omitempty"`
	Turn      *engine.EndTurnResult `json:"turn,omitempty"`
}

type LegInput struct {
	Animal string `json:"animal"`
	Amount int    `json:"amount"`
}

type TradeRequest struct {
	TargetIndex int      `json:"target_index"`
	Offer       LegInput `json:"offer"`
	Want        LegInput `json:"want"`
}

type PlayerView struct {
	Index int       `json:"index"`
	Name  string    `json:"name"`
	Herd  farm.Herd `json:"herd"`
}

type TradeView struct {
	ID             string    `json:"id"`
	RequestorIndex int       `json:"requestor_index"`
	RequestorName  string    `json:"requestor_name"`
	TargetIndex    int       `json:"target_index"`
	TargetName     string    `json:"target_name"`
	Offer          trade.Leg `json:"offer"`
	Want           trade.Leg `json:"want"`
	Description    string    `json:"description"`
	TurnsLeft      int       `json:"turns_left"`
}

// Snapshot is an immutable copy of the public game state.
type Snapshot struct {
	SessionID          string       `json:"session_id"`
	TurnNumber         int          `json:"turn_number"`
	CurrentPlayerIndex int          `json:"current_player_index"`
	CurrentPlayerName  string       `json:"current_player_name"`
	HasRolled          bool         `json:"has_rolled"`
	HasExchanged       bool         `json:"has_exchanged"`
	CurrentPlayerHerd  farm.Herd    `json:"current_player_herd"`
	BankHerd           farm.Herd    `json:"bank_herd"`
	Players            []PlayerView `json:"players"`
	PendingTrades      []TradeView  `json:"pending_trades"`
	WinnerIndex        *int         `json:"winner_index,omitempty"`
	Difficulty         string       `json:"difficulty"`
	TradeExpiryTurns   int          `json:"trade_expiry_turns"`
}

type Toast struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type Victory struct {
	WinnerIndex int    `json:"winner_index"`
	WinnerName  string `json:"winner_name"`
	TurnNumber  int    `json:"turn_number"`
}
