package effect

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNilEffect = errors.New("nil effect")

// Bundle is the ordered output of one pipeline run.
type Bundle []Effect

func (b *Bundle) Add(effects ...Effect) {
	*b = append(*b, effects...)
}

// Of returns the effects of type T in bundle order.
func Of[T Effect](b Bundle) []T {
	var out []T
	for _, e := range b {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func (b Bundle) Kinds() []Kind {
	out := make([]Kind, 0, len(b))
	for _, e := range b {
		if e == nil {
			continue
		}
		out = append(out, e.Kind())
	}
	return out
}

func (b Bundle) MarshalJSON() ([]byte, error) {
	out := make([]map[string]any, 0, len(b))
	for i, e := range b {
		if e == nil {
			return nil, fmt.Errorf("marshal effect %d: %w", i, ErrNilEffect)
		}
		raw, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal %s effect: %w", e.Kind(), err)
		}
		fields := map[string]any{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("flatten %s effect: %w", e.Kind(), err)
		}
		fields["kind"] = e.Kind()
		out = append(out, fields)
	}
	return json.Marshal(out)
}

func (b *Bundle) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Bundle, 0, len(raws))
	for _, raw := range raws {
		var head struct {
			Kind Kind `json:"kind"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return err
		}
		decode, ok := decoders[head.Kind]
		if !ok {
			return fmt.Errorf("unknown effect kind %q", head.Kind)
		}
		e, err := decode(raw)
		if err != nil {
			return fmt.Errorf("decode %s effect: %w", head.Kind, err)
		}
		out = append(out, e)
	}
	*b = out
	return nil
}

var decoders = map[Kind]func(json.RawMessage) (Effect, error){
	KindDamage:        decodeAs[Damage],
	KindKnockback:     decodeAs[Knockback],
	KindExplosion:     decodeAs[Explosion],
	KindSpawn:         decodeAs[Spawn],
	KindStatus:        decodeAs[Status],
	KindWorldTime:     decodeAs[WorldTime],
	KindMessage:       decodeAs[Message],
	KindLightning:     decodeAs[Lightning],
	KindSound:         decodeAs[Sound],
	KindHeal:          decodeAs[Heal],
	KindSetHealth:     decodeAs[SetHealth],
	KindVelocity:      decodeAs[Velocity],
	KindHunger:        decodeAs[Hunger],
	KindPlaceBlock:    decodeAs[PlaceBlock],
	KindParticleTrail: decodeAs[ParticleTrail],
}

func decodeAs[T Effect](raw json.RawMessage) (Effect, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
