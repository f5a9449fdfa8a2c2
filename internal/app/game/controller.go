package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/karl5252/beastbazaar/internal/app/ports"
	"github.com/karl5252/beastbazaar/internal/domain/engine"
	"github.com/karl5252/beastbazaar/internal/domain/farm"
	"github.com/karl5252/beastbazaar/internal/domain/trade"
)

var ErrMissingDependency = errors.New("game controller: missing dependency")

const ReasonInternal = "internal_error"

type Config struct {
	SessionID  string
	Difficulty string
	Session    *engine.Session
	Dice       ports.DiceRoller
	Sink       ports.EventSink
	Journal    ports.Journal
	TxManager  ports.TxManager
	Metrics    ports.ActionMetrics
	Logger     *zap.Logger
	Now        func() time.Time
}

// Controller is the only entry point that mutates a session. Every call
// holds the lock for its whole duration.
type Controller struct {
	mu         sync.Mutex
	sessionID  string
	difficulty string
	session    *engine.Session
	dice       ports.DiceRoller
	sink       ports.EventSink
	journal    ports.Journal
	tx         ports.TxManager
	metrics    ports.ActionMetrics
	logger     *zap.Logger
	now        func() time.Time
	seq        int64
}

func NewController(cfg Config) (*Controller, error) {
	if cfg.Session == nil {
		return nil, fmt.Errorf("%w: session", ErrMissingDependency)
	}
	if cfg.Dice == nil {
		return nil, fmt.Errorf("%w: dice roller", ErrMissingDependency)
	}
	c := &Controller{
		sessionID:  cfg.SessionID,
		difficulty: cfg.Difficulty,
		session:    cfg.Session,
		dice:       cfg.Dice,
		sink:       cfg.Sink,
		journal:    cfg.Journal,
		tx:         cfg.TxManager,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
		now:        cfg.Now,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.difficulty == "" {
		c.difficulty = farm.DifficultyEasy
	}
	return c, nil
}

func (c *Controller) SessionID() string {
	return c.sessionID
}

// State returns a fresh snapshot without dispatching anything.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Start publishes the opening snapshot.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publish(ctx, ports.EventGameState, c.snapshot())
}

// RollDice resolves the given faces, or rolls the configured dice when
// pair is nil.
func (c *Controller) RollDice(ctx context.Context, pair *ports.DicePair) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatch(ctx, ActionRoll, func() (Result, error) {
		var faces ports.DicePair
		if pair != nil {
			faces = *pair
		} else {
			faces = c.dice.Roll()
		}
		player := c.session.CurrentIndex()
		roll, err := c.session.ProcessDiceRoll(player, faces.Green, faces.Red)
		if err != nil {
			return Result{}, err
		}
		return Result{Dice: &faces, Roll: &roll}, nil
	})
}

func (c *Controller) ExchangeWithBank(ctx context.Context, from, to string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatch(ctx, ActionExchange, func() (Result, error) {
		fromKind, err := farm.ParseKind(from)
		if err != nil {
			return Result{}, err
		}
		toKind, err := farm.ParseKind(to)
		if err != nil {
			return Result{}, err
		}
		res, err := c.session.ExchangeWithBank(fromKind, toKind)
		if err != nil {
			return Result{}, err
		}
		return Result{Exchanged: &res}, nil
	})
}

func (c *Controller) PostTrade(ctx context.Context, req TradeRequest) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatch(ctx, ActionPostTrade, func() (Result, error) {
		offer, err := parseLeg(req.Offer)
		if err != nil {
			return Result{}, err
		}
		want, err := parseLeg(req.Want)
		if err != nil {
			return Result{}, err
		}
		id, err := c.session.PostTrade(engine.TradeProposal{TargetIndex: req.TargetIndex, Offer: offer, Want: want})
		if err != nil {
			return Result{}, err
		}
		return Result{RequestID: id}, nil
	})
}

// AcceptTrade accepts on behalf of acceptorIndex, or the current player
// when it is nil.
func (c *Controller) AcceptTrade(ctx context.Context, requestID string, acceptorIndex *int) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatch(ctx, ActionAcceptTrade, func() (Result, error) {
		acceptor := c.session.CurrentIndex()
		if acceptorIndex != nil {
			acceptor = *acceptorIndex
		}
		return c.accept(acceptor, requestID)
	})
}

// SettleBankTrade lets the bank accept an offer addressed to it.
func (c *Controller) SettleBankTrade(ctx context.Context, requestID string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatch(ctx, ActionSettleTrade, func() (Result, error) {
		return c.accept(farm.BankIndex, requestID)
	})
}

func (c *Controller) accept(acceptor int, requestID string) (Result, error) {
	offer, err := c.session.AcceptTrade(acceptor, requestID)
	if err != nil {
		return Result{}, err
	}
	return Result{RequestID: offer.ID, Trade: &offer}, nil
}

func (c *Controller) RejectTrade(ctx context.Context, requestID string, actorIndex *int, reason string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatch(ctx, ActionRejectTrade, func() (Result, error) {
		actor := c.session.CurrentIndex()
		if actorIndex != nil {
			actor = *actorIndex
		}
		offer, err := c.session.RejectTrade(actor, requestID, reason)
		if err != nil {
			return Result{}, err
		}
		return Result{RequestID: offer.ID, Trade: &offer}, nil
	})
}

func (c *Controller) EndTurn(ctx context.Context) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatch(ctx, ActionEndTurn, func() (Result, error) {
		res, err := c.session.EndTurn()
		if err != nil {
			return Result{}, err
		}
		if res.TradesPruned > 0 {
			c.publish(ctx, ports.EventUIToast, Toast{Message: prunedMessage(res.TradesPruned), Type: "warning"})
		}
		if res.WinnerIndex != nil {
			winner, _ := c.session.Player(*res.WinnerIndex)
			c.publish(ctx, ports.EventGameVictory, Victory{
				WinnerIndex: *res.WinnerIndex,
				WinnerName:  winner.Name,
				TurnNumber:  c.session.Turn(),
			})
		}
		return Result{Turn: &res}, nil
	})
}

func prunedMessage(n int) string {
	if n == 1 {
		return "Trade offer no longer valid!"
	}
	return fmt.Sprintf("%d trade offers no longer valid!", n)
}

func parseLeg(in LegInput) (trade.Leg, error) {
	kind, err := farm.ParseKind(in.Animal)
	if err != nil {
		return trade.Leg{}, err
	}
	return trade.Leg{Animal: kind, Amount: in.Amount}, nil
}

// dispatch runs one action. Failures are forwarded unchanged as ui:error
// and never retried; successes publish a fresh snapshot.
func (c *Controller) dispatch(ctx context.Context, action string, fn func() (Result, error)) Result {
	actor := c.session.CurrentIndex()
	turn := c.session.Turn()

	res, err := fn()
	res.Action = action
	if err != nil {
		res = Result{Action: action, Reason: ReasonInternal, Message: err.Error()}
		if reason, ok := farm.ReasonOf(err); ok {
			res.Reason = string(reason)
			if err.Error() == string(reason) {
				res.Message = ""
			}
			c.recordRejected(action, res.Reason)
		} else {
			c.logger.Error("action failed", zap.String("action", action), zap.Error(err))
			c.recordFailure(action)
		}
		c.publish(ctx, ports.EventUIError, res)
	} else {
		res.OK = true
		c.recordSuccess(action)
		c.publish(ctx, ports.EventGameState, c.snapshot())
	}
	c.appendJournal(ctx, action, actor, turn, res)
	return res
}

func (c *Controller) publish(ctx context.Context, name string, payload any) {
	if c.sink == nil {
		return
	}
	if err := c.sink.Publish(ctx, name, payload); err != nil {
		c.logger.Warn("publish event failed", zap.String("event", name), zap.Error(err))
	}
}

func (c *Controller) appendJournal(ctx context.Context, action string, actor, turn int, res Result) {
	if c.journal == nil {
		return
	}
	c.seq++
	entry := ports.JournalEntry{
		SessionID:   c.sessionID,
		Seq:         c.seq,
		Action:      action,
		PlayerIndex: actor,
		Turn:        turn,
		OK:          res.OK,
		Reason:      res.Reason,
		Payload:     journalPayload(res),
		OccurredAt:  c.now(),
	}
	write := func(ctx context.Context) error {
		return c.journal.Append(ctx, entry)
	}
	var err error
	if c.tx != nil {
		err = c.tx.RunInTx(ctx, write)
	} else {
		err = write(ctx)
	}
	if err != nil {
		c.logger.Warn("journal append failed",
			zap.String("session_id", c.sessionID),
			zap.Int64("seq", entry.Seq),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func journalPayload(res Result) map[string]any {
	out := map[string]any{}
	if res.Message != "" {
		out["message"] = res.Message
	}
	if res.Dice != nil {
		out["green"] = res.Dice.Green.String()
		out["red"] = res.Dice.Red.String()
	}
	if res.Roll != nil {
		out["roll_type"] = string(res.Roll.Type)
		if len(res.Roll.Gained) > 0 {
			gained := map[string]any{}
			for k, n := range res.Roll.Gained {
				gained[k.String()] = n
			}
			out["gained"] = gained
		}
	}
	if res.Exchanged != nil {
		out["from"] = res.Exchanged.From.String()
		out["to"] = res.Exchanged.To.String()
		out["gave"] = res.Exchanged.Gave
		out["got"] = res.Exchanged.Got
	}
	if res.RequestID != "" {
		out["request_id"] = res.RequestID
	}
	if res.Trade != nil {
		out["trade"] = res.Trade.Description()
		out["status"] = string(res.Trade.Status)
	}
	if res.Turn != nil {
		out["trades_pruned"] = res.Turn.TradesPruned
		if res.Turn.WinnerIndex != nil {
			out["winner_index"] = *res.Turn.WinnerIndex
		}
	}
	return out
}

func (c *Controller) recordSuccess(action string) {
	if c.metrics != nil {
		c.metrics.RecordSuccess(action)
	}
}

func (c *Controller) recordRejected(action, reason string) {
	if c.metrics != nil {
		c.metrics.RecordRejected(action, reason)
	}
}

func (c *Controller) recordFailure(action string) {
	if c.metrics != nil {
		c.metrics.RecordFailure(action)
	}
}
