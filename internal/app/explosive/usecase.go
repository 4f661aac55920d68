package explosive

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"thunderpunch/internal/app/apply"
	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/app/raycast"
	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/effect"
	"thunderpunch/internal/domain/world"
	"thunderpunch/internal/random"
)

var (
	ErrInvalidPlayerContext = errors.New("invalid player context")
	ErrHandNotEmpty         = errors.New("hand is not empty")
	ErrNotSneaking          = errors.New("player is not sneaking")
)

const (
	explodeVolume = 3.0
	explodePitch  = 0.3
	thunderVolume = 2.0
	thunderPitch  = 1.0
)

var tracer = otel.Tracer("thunderpunch/internal/app/explosive")

type Response struct {
	OutcomeID string          `json:"outcome_id,omitempty"`
	Handled   bool            `json:"handled"`
	Hit       raycast.HitKind `json:"hit,omitempty"`
	Distance  float64         `json:"distance"`
	Effects   effect.Bundle   `json:"effects"`
	Failure   string          `json:"failure,omitempty"`
}

type UseCase struct {
	Random   ports.Random
	Resolver raycast.Resolver
	Journal  ports.OutcomeRecorder
	Metrics  ports.TriggerMetrics
	Logger   *log.Logger
}

// Eligible reports whether an empty-hand use may fire the raycast. Using an
// item needs an empty hand; using a block also needs the player to sneak.
func Eligible(trigger combat.Trigger, pc combat.PlayerContext) error {
	if strings.TrimSpace(pc.PlayerID) == "" || pc.Look.Len() == 0 {
		return ErrInvalidPlayerContext
	}
	switch trigger {
	case combat.TriggerUseItem:
	case combat.TriggerUseBlock:
		if !pc.Sneaking {
			return ErrNotSneaking
		}
	default:
		return fmt.Errorf("%w: unsupported trigger %q", ErrInvalidPlayerContext, trigger)
	}
	if !pc.HandEmpty {
		return ErrHandNotEmpty
	}
	return nil
}

func (u UseCase) Handle(ctx context.Context, trigger combat.Trigger, pc combat.PlayerContext, w ports.World) (Response, error) {
	if err := Eligible(trigger, pc); err != nil {
		u.recordRejected(trigger)
		return Response{}, err
	}
	if !w.IsServerAuthoritative() {
		u.recordRejected(trigger)
		return Response{}, ports.ErrNotAuthoritative
	}

	out := Response{}
	var failures []error
	hit, bundle, err := u.trigger(ctx, pc, w)
	if err != nil {
		u.logger().Printf("error processing explosive raycast by %s: %v", pc.PlayerID, err)
		failures = append(failures, err)
	} else {
		out.Hit = hit.Kind
		out.Distance = hit.Position.Sub(pc.EyePosition).Len()
	}
	if err := apply.Apply(ctx, w, bundle); err != nil {
		u.logger().Printf("error applying explosive raycast for %s: %v", pc.PlayerID, err)
		failures = append(failures, err)
	}
	out.Effects = bundle
	out.Handled = len(failures) == 0
	if !out.Handled {
		out.Failure = errors.Join(failures...).Error()
	}

	if u.Metrics != nil {
		if out.Handled {
			u.Metrics.RecordHandled(trigger, len(bundle))
		} else {
			u.Metrics.RecordFailure(trigger)
		}
	}
	if u.Journal != nil {
		target, _, _ := hit.Entity()
		rec, err := u.Journal.Record(ctx, ports.OutcomeRecord{
			Trigger:  trigger,
			ActorID:  pc.PlayerID,
			TargetID: target,
			Handled:  out.Handled,
			Failure:  out.Failure,
			Effects:  bundle,
		})
		if err != nil {
			u.logger().Printf("journal explosive outcome: %v", err)
		} else {
			out.OutcomeID = rec.ID
		}
	}
	return out, nil
}

// Trigger casts from the player's eye along the look vector and returns the
// effects of the impact.
func (u UseCase) Trigger(ctx context.Context, pc combat.PlayerContext, w ports.World) (effect.Bundle, error) {
	_, b, err := u.trigger(ctx, pc, w)
	return b, err
}

func (u UseCase) trigger(ctx context.Context, pc combat.PlayerContext, w ports.World) (raycast.Hit, effect.Bundle, error) {
	ctx, span := tracer.Start(ctx, "explosive.trigger")
	defer span.End()
	span.SetAttributes(attribute.String("player.id", pc.PlayerID))

	if pc.Look.Len() == 0 {
		return raycast.Hit{}, nil, ErrInvalidPlayerContext
	}
	eye := pc.EyePosition
	hit, err := u.Resolver.Resolve(ctx, w, pc.PlayerID, eye, pc.Look.Normalize(), combat.RaycastRange)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "raycast")
		return raycast.Hit{}, nil, err
	}
	distance := hit.Position.Sub(eye).Len()
	u.logger().Printf("Explosive raycast hit %s at distance %.2f", hit.Kind, distance)
	span.SetAttributes(
		attribute.String("hit.kind", string(hit.Kind)),
		attribute.Float64("hit.distance", distance),
	)

	rnd := u.random()
	var b effect.Bundle
	b.Add(effect.Explosion{
		Position:    hit.Position,
		Power:       random.Uniform(rnd, combat.RaycastPowerMin, combat.RaycastPowerMax),
		Attribution: world.Attribution{SourceID: pc.PlayerID, Kind: world.ExplosionTNT},
	})

	if id, entityPos, ok := hit.Entity(); ok {
		dx, dz := pushDirection(eye, hit.Position)
		b.Add(
			effect.Damage{Target: id, Amount: combat.RaycastEntityDamage, Source: world.DamagePlayerAttack, SourceID: pc.PlayerID},
			effect.Knockback{
				Target:   id,
				Strength: random.Uniform(rnd, combat.RaycastKnockbackMin, combat.RaycastKnockbackMax),
				DirX:     dx,
				DirZ:     dz,
			},
			effect.Lightning{Position: entityPos},
		)
	}

	b.Add(
		effect.Lightning{Position: hit.Position},
		effect.Sound{Sound: world.SoundGenericExplode, Position: hit.Position, Volume: explodeVolume, Pitch: explodePitch},
		effect.Sound{Sound: world.SoundThunder, Position: hit.Position, Volume: thunderVolume, Pitch: thunderPitch},
		effect.ParticleTrail{Start: eye, End: hit.Position},
	)
	return hit, b, nil
}

// pushDirection is the horizontal unit vector from the eye to the impact.
// A vertical shot has no horizontal component and pushes nowhere.
func pushDirection(eye, impact world.Vec3) (dx, dz float64) {
	d := impact.Sub(eye)
	h := math.Hypot(d[0], d[2])
	if h == 0 {
		return 0, 0
	}
	return d[0] / h, d[2] / h
}

func (u UseCase) random() ports.Random {
	if u.Random != nil {
		return u.Random
	}
	return random.New()
}

func (u UseCase) logger() *log.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return log.Default()
}

func (u UseCase) recordRejected(trigger combat.Trigger) {
	if u.Metrics != nil {
		u.Metrics.RecordRejected(trigger)
	}
}
