package attack

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"thunderpunch/internal/app/apply"
	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/app/spawn"
	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/effect"
	"thunderpunch/internal/random"
)

var ErrInvalidAttackContext = errors.New("invalid attack context")

var tracer = otel.Tracer("thunderpunch/internal/app/attack")

type UseCase struct {
	Random  ports.Random
	Tuning  ports.TuningSource
	Spawns  ports.SpawnTimer
	Journal ports.OutcomeRecorder
	Metrics ports.TriggerMetrics
	Logger  *log.Logger
}

func ValidateContext(ac combat.AttackContext) error {
	attacker := strings.TrimSpace(ac.AttackerID)
	target := strings.TrimSpace(ac.TargetID)
	if attacker == "" || target == "" || attacker == target || !ac.TargetLiving {
		return ErrInvalidAttackContext
	}
	return nil
}

// Handle runs one melee trigger end to end. Only rejections are returned as
// errors; resolution and application failures are logged and reported in
// the response.
func (u UseCase) Handle(ctx context.Context, ac combat.AttackContext, w ports.World) (Response, error) {
	if err := ValidateContext(ac); err != nil {
		u.recordRejected()
		return Response{}, err
	}
	if !w.IsServerAuthoritative() {
		u.recordRejected()
		return Response{}, ports.ErrNotAuthoritative
	}

	bundle, err := u.Resolve(ctx, ac, w)
	var failures []error
	if err != nil {
		u.logger().Printf("error processing attack by %s: %v", ac.AttackerID, err)
		failures = append(failures, err)
	}
	if err := apply.Apply(ctx, w, bundle); err != nil {
		u.logger().Printf("error applying attack effects for %s: %v", ac.AttackerID, err)
		failures = append(failures, err)
	}

	out := Response{Handled: len(failures) == 0, Effects: bundle}
	if len(failures) > 0 {
		out.Failure = errors.Join(failures...).Error()
	}
	if u.Metrics != nil {
		if out.Handled {
			u.Metrics.RecordHandled(combat.TriggerMelee, len(bundle))
		} else {
			u.Metrics.RecordFailure(combat.TriggerMelee)
		}
	}
	if u.Journal != nil {
		rec, err := u.Journal.Record(ctx, ports.OutcomeRecord{
			Trigger:  combat.TriggerMelee,
			ActorID:  ac.AttackerID,
			TargetID: ac.TargetID,
			Handled:  out.Handled,
			Failure:  out.Failure,
			Effects:  bundle,
		})
		if err != nil {
			u.logger().Printf("journal attack outcome: %v", err)
		} else {
			out.OutcomeID = rec.ID
		}
	}
	return out, nil
}

// Resolve computes the effect bundle of one attack. Every step runs on
// every call; a failing world query stops the pipeline and the effects
// gathered so far are returned with the error.
func (u UseCase) Resolve(ctx context.Context, ac combat.AttackContext, w ports.World) (effect.Bundle, error) {
	ctx, span := tracer.Start(ctx, "attack.resolve", trace.WithAttributes(
		attribute.String("attacker.id", ac.AttackerID),
		attribute.String("target.id", ac.TargetID),
		attribute.Int64("world.tick", ac.WorldTick),
	))
	defer span.End()

	rnd := u.random()
	r := &Resolution{
		In:      ac,
		Tuning:  u.tuning(),
		Now:     w.Now(),
		rnd:     rnd,
		planner: spawn.Planner{Random: rnd},
	}
	for _, s := range u.steps() {
		if err := s.run(ctx, r, w); err != nil {
			err = fmt.Errorf("%s: %w", s.name, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, s.name)
			return r.Bundle, err
		}
	}
	span.SetAttributes(attribute.Int("effects", len(r.Bundle)))
	return r.Bundle, nil
}

func (u UseCase) random() ports.Random {
	if u.Random != nil {
		return u.Random
	}
	return random.New()
}

func (u UseCase) tuning() combat.Tuning {
	if u.Tuning != nil {
		return u.Tuning.Tuning()
	}
	return combat.DefaultTuning()
}

func (u UseCase) logger() *log.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return log.Default()
}

func (u UseCase) recordRejected() {
	if u.Metrics != nil {
		u.Metrics.RecordRejected(combat.TriggerMelee)
	}
}
