package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"thunderpunch/internal/adapter/world/sandbox"
	"thunderpunch/internal/app/attack"
	"thunderpunch/internal/app/explosive"
	"thunderpunch/internal/app/journal"
	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/app/scheduler"
	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/effect"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

var ErrUnsupportedTrigger = errors.New("unsupported trigger")

type Handler struct {
	World       *sandbox.World
	AttackUC    attack.UseCase
	ExplosiveUC explosive.UseCase
	JournalUC   journal.UseCase
	Scheduler   schedulerStateProvider
	KPI         kpiSnapshotProvider
}

type schedulerStateProvider interface {
	State() scheduler.State
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	triggers := s.Group("/api/triggers")
	triggers.POST("/attack", h.attack)
	triggers.POST("/use", h.use)

	ops := s.Group("/ops")
	ops.GET("/scheduler", h.schedulerState)
	ops.GET("/kpi", h.kpi)
	ops.GET("/outcomes", h.outcomes)
	ops.GET("/world", h.world)
	ops.POST("/world/entities", h.addEntity)
}

type attackRequest struct {
	AttackerID string `json:"attacker_id"`
	TargetID   string `json:"target_id"`
}

type useRequest struct {
	PlayerID string         `json:"player_id"`
	Trigger  combat.Trigger `json:"trigger"`
}

type outcomeView struct {
	ID         string         `json:"id"`
	Trigger    combat.Trigger `json:"trigger"`
	ActorID    string         `json:"actor_id"`
	TargetID   string         `json:"target_id,omitempty"`
	Handled    bool           `json:"handled"`
	Failure    string         `json:"failure,omitempty"`
	Effects    effect.Bundle  `json:"effects"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type outcomesResponse struct {
	ActorID  string        `json:"actor_id"`
	Outcomes []outcomeView `json:"outcomes"`
}

func (h Handler) attack(c context.Context, ctx *app.RequestContext) {
	if h.World == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "world not configured")
		return
	}

	var body attackRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	ac, err := h.World.AttackContext(strings.TrimSpace(body.AttackerID), strings.TrimSpace(body.TargetID))
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.AttackUC.Handle(c, ac, h.World)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) use(c context.Context, ctx *app.RequestContext) {
	if h.World == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "world not configured")
		return
	}

	var body useRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.Trigger == "" {
		body.Trigger = combat.TriggerUseItem
	}
	if body.Trigger != combat.TriggerUseItem && body.Trigger != combat.TriggerUseBlock {
		writeError(ctx, ErrUnsupportedTrigger)
		return
	}

	pc, err := h.World.PlayerContext(strings.TrimSpace(body.PlayerID))
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ExplosiveUC.Handle(c, body.Trigger, pc, h.World)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) schedulerState(_ context.Context, ctx *app.RequestContext) {
	if h.Scheduler == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "scheduler not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.Scheduler.State())
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) outcomes(c context.Context, ctx *app.RequestContext) {
	if h.JournalUC.Repo == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "journal not configured")
		return
	}
	actorID := strings.TrimSpace(string(ctx.Query("actor_id")))
	limit := 0
	if raw := string(ctx.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "limit must be an integer")
			return
		}
		limit = n
	}

	records, err := h.JournalUC.List(c, actorID, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	out := outcomesResponse{ActorID: actorID, Outcomes: make([]outcomeView, 0, len(records))}
	for _, rec := range records {
		out.Outcomes = append(out.Outcomes, outcomeView{
			ID:         rec.ID,
			Trigger:    rec.Trigger,
			ActorID:    rec.ActorID,
			TargetID:   rec.TargetID,
			Handled:    rec.Handled,
			Failure:    rec.Failure,
			Effects:    rec.Effects,
			OccurredAt: rec.OccurredAt,
		})
	}
	ctx.JSON(consts.StatusOK, out)
}

func (h Handler) world(_ context.Context, ctx *app.RequestContext) {
	if h.World == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "world not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.World.Snapshot())
}

func (h Handler) addEntity(_ context.Context, ctx *app.RequestContext) {
	if h.World == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "world not configured")
		return
	}

	var body sandbox.Entity
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	created, err := h.World.AddEntity(body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, created)
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, attack.ErrInvalidAttackContext):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_attack_context", err.Error())
	case errors.Is(err, explosive.ErrInvalidPlayerContext):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_player_context", err.Error())
	case errors.Is(err, ErrUnsupportedTrigger):
		writeErrorBody(ctx, consts.StatusBadRequest, "unsupported_trigger", err.Error())
	case errors.Is(err, journal.ErrInvalidQuery):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, explosive.ErrHandNotEmpty):
		writeErrorBody(ctx, consts.StatusConflict, "hand_not_empty", err.Error())
	case errors.Is(err, explosive.ErrNotSneaking):
		writeErrorBody(ctx, consts.StatusConflict, "not_sneaking", err.Error())
	case errors.Is(err, ports.ErrNotAuthoritative):
		writeErrorBody(ctx, consts.StatusConflict, "not_authoritative", err.Error())
	case errors.Is(err, sandbox.ErrDuplicateID):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	case errors.Is(err, sandbox.ErrUnknownEntity),
		errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
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
