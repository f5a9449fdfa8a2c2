package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/karl5252/beastbazaar/internal/app/game"
	"github.com/karl5252/beastbazaar/internal/app/ports"
	"github.com/karl5252/beastbazaar/internal/app/replay"
	"github.com/karl5252/beastbazaar/internal/domain/farm"
)

// GameFacade is the part of game.Controller the routes drive.
type GameFacade interface {
	SessionID() string
	State() game.Snapshot
	RollDice(ctx context.Context, pair *ports.DicePair) game.Result
	ExchangeWithBank(ctx context.Context, from, to string) game.Result
	PostTrade(ctx context.Context, req game.TradeRequest) game.Result
	AcceptTrade(ctx context.Context, requestID string, acceptorIndex *int) game.Result
	SettleBankTrade(ctx context.Context, requestID string) game.Result
	RejectTrade(ctx context.Context, requestID string, actorIndex *int, reason string) game.Result
	EndTurn(ctx context.Context) game.Result
}

type Handler struct {
	Game        GameFacade
	ReplayUC    replay.UseCase
	KPI         kpiSnapshotProvider
	Schemas     *Schemas
	AllowOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.AllowOrigin))

	g := s.Group("/api/game")
	g.GET("/state", h.state)
	g.POST("/roll", h.roll)
	g.POST("/exchange", h.exchange)
	g.POST("/trades", h.postTrade)
	g.POST("/trades/:id/accept", h.acceptTrade)
	g.POST("/trades/:id/settle", h.settleTrade)
	g.POST("/trades/:id/reject", h.rejectTrade)
	g.POST("/end-turn", h.endTurn)
	g.GET("/journal", h.journal)

	s.GET("/ops/kpi", h.kpi)
}

type rollRequest struct {
	Green string `json:"green,omitempty"`
	Red   string `json:"red,omitempty"`
}

type exchangeRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type acceptRequest struct {
	AcceptorIndex *int `json:"acceptor_index,omitempty"`
}

type rejectRequest struct {
	ActorIndex *int   `json:"actor_index,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func (h Handler) state(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.Game.State())
}

func (h Handler) roll(c context.Context, ctx *app.RequestContext) {
	var body rollRequest
	if !h.bind(ctx, "roll", &body) {
		return
	}
	var pair *ports.DicePair
	if body.Green != "" {
		green, err := farm.ParseKind(body.Green)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, string(farm.ReasonBadAnimal), err.Error())
			return
		}
		red, err := farm.ParseKind(body.Red)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, string(farm.ReasonBadAnimal), err.Error())
			return
		}
		pair = &ports.DicePair{Green: green, Red: red}
	}
	writeResult(ctx, h.Game.RollDice(c, pair))
}

func (h Handler) exchange(c context.Context, ctx *app.RequestContext) {
	var body exchangeRequest
	if !h.bind(ctx, "exchange", &body) {
		return
	}
	writeResult(ctx, h.Game.ExchangeWithBank(c, body.From, body.To))
}

func (h Handler) postTrade(c context.Context, ctx *app.RequestContext) {
	var body game.TradeRequest
	if !h.bind(ctx, "post_trade", &body) {
		return
	}
	writeResult(ctx, h.Game.PostTrade(c, body))
}

func (h Handler) acceptTrade(c context.Context, ctx *app.RequestContext) {
	id, ok := requestID(ctx)
	if !ok {
		return
	}
	var body acceptRequest
	if !h.bind(ctx, "accept_trade", &body) {
		return
	}
	writeResult(ctx, h.Game.AcceptTrade(c, id, body.AcceptorIndex))
}

func (h Handler) settleTrade(c context.Context, ctx *app.RequestContext) {
	id, ok := requestID(ctx)
	if !ok {
		return
	}
	writeResult(ctx, h.Game.SettleBankTrade(c, id))
}

func (h Handler) rejectTrade(c context.Context, ctx *app.RequestContext) {
	id, ok := requestID(ctx)
	if !ok {
		return
	}
	var body rejectRequest
	if !h.bind(ctx, "reject_trade", &body) {
		return
	}
	writeResult(ctx, h.Game.RejectTrade(c, id, body.ActorIndex, body.Reason))
}

func (h Handler) endTurn(c context.Context, ctx *app.RequestContext) {
	writeResult(ctx, h.Game.EndTurn(c))
}

func (h Handler) journal(c context.Context, ctx *app.RequestContext) {
	sessionID := strings.TrimSpace(string(ctx.Query("session_id")))
	if sessionID == "" {
		sessionID = h.Game.SessionID()
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SessionID:    sessionID,
		Limit:        limit,
		Action:       string(ctx.Query("action")),
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func requestID(ctx *app.RequestContext) (string, bool) {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_request_id", "missing trade request id")
		return "", false
	}
	return id, true
}

// bind validates the body against the named schema and decodes it into
// out. An empty body counts as {}.
func (h Handler) bind(ctx *app.RequestContext, schema string, out any) bool {
	body := ctx.Request.Body()
	if len(body) == 0 {
		body = []byte("{}")
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return false
	}
	if h.Schemas != nil {
		if err := h.Schemas.Validate(schema, doc); err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_body", err.Error())
			return false
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_body", err.Error())
		return false
	}
	return true
}

// writeResult answers 200 for applied actions, 409 for rule rejections and
// 500 when the action failed for any other reason.
func writeResult(ctx *app.RequestContext, res game.Result) {
	switch {
	case res.OK:
		ctx.JSON(consts.StatusOK, res)
	case res.Reason == game.ReasonInternal:
		ctx.JSON(consts.StatusInternalServerError, res)
	default:
		ctx.JSON(consts.StatusConflict, res)
	}
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
