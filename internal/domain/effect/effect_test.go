package effect

import (
	"encoding/json"
	"errors"
	"testing"

	"thunderpunch/internal/domain/world"
)

func TestParticleTrail_SamplesAboutHundredOnLongLines(t *testing.T) {
	trail := ParticleTrail{Start: world.Vec3{0, 64, 0}, End: world.Vec3{500, 64, 0}}

	count, flames := 0, 0
	for s := range trail.Samples() {
		if s.Flame {
			if count%3 != 0 {
				t.Fatalf("expected flame only on every third sample, got one at %d", count)
			}
			flames++
		}
		count++
	}
	if count != 100 {
		t.Fatalf("expected 100 samples, got %d", count)
	}
	if flames != 34 {
		t.Fatalf("expected 34 flame samples, got %d", flames)
	}
}

func TestParticleTrail_ShortLineUsesOneBlockSpacing(t *testing.T) {
	trail := ParticleTrail{Start: world.Vec3{0, 0, 0}, End: world.Vec3{0, 0, 10}}
	if trail.Step() != 1 {
		t.Fatalf("expected step 1, got %v", trail.Step())
	}

	var last world.Vec3
	count := 0
	for s := range trail.Samples() {
		last = s.Position
		count++
	}
	if count != 10 {
		t.Fatalf("expected 10 samples, got %d", count)
	}
	if last[2] != 9 {
		t.Fatalf("expected last sample at z=9, got %v", last)
	}
}

func TestParticleTrail_ZeroLengthYieldsNothing(t *testing.T) {
	trail := ParticleTrail{Start: world.Vec3{1, 2, 3}, End: world.Vec3{1, 2, 3}}
	for range trail.Samples() {
		t.Fatalf("expected no samples for zero-length trail")
	}
}

func TestParticleTrail_StopsWhenConsumerBreaks(t *testing.T) {
	trail := ParticleTrail{Start: world.Vec3{0, 0, 0}, End: world.Vec3{50, 0, 0}}
	count := 0
	for range trail.Samples() {
		count++
		if count == 5 {
			break
		}
	}
	if count != 5 {
		t.Fatalf("expected early stop at 5, got %d", count)
	}
}

func TestBundleOf_FiltersInOrder(t *testing.T) {
	var b Bundle
	b.Add(
		Damage{Target: "t", Amount: 3},
		Lightning{},
		Damage{Target: "t", Amount: 6},
	)

	damages := Of[Damage](b)
	if len(damages) != 2 {
		t.Fatalf("expected 2 damage effects, got %d", len(damages))
	}
	if damages[0].Amount != 3 || damages[1].Amount != 6 {
		t.Fatalf("expected amounts 3 then 6, got %v then %v", damages[0].Amount, damages[1].Amount)
	}
}

func TestBundleJSON_KeepsKindsAndOrder(t *testing.T) {
	b := Bundle{
		Status{Target: "p", Status: world.StatusResistance, DurationTicks: 600, Amplifier: 1},
		Spawn{world.SpawnRequest{Creature: world.EntityWolf, Position: world.Vec3{1, 2, 3}}},
		PlaceBlock{Position: world.BlockPos{4, 5, 6}, Block: world.BlockLava},
		ParticleTrail{End: world.Vec3{10, 0, 0}},
	}

	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var flat []map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		t.Fatalf("unmarshal flat: %v", err)
	}
	if flat[1]["kind"] != string(KindSpawn) || flat[1]["creature"] != string(world.EntityWolf) {
		t.Fatalf("expected flattened spawn entry, got %v", flat[1])
	}

	var got Bundle
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal bundle: %v", err)
	}
	want := b.Kinds()
	for i, k := range got.Kinds() {
		if k != want[i] {
			t.Fatalf("expected kind %s at %d, got %s", want[i], i, k)
		}
	}
	if spawn := got[1].(Spawn); spawn.Position != (world.Vec3{1, 2, 3}) {
		t.Fatalf("expected spawn position kept, got %v", spawn.Position)
	}
}

func TestBundleJSON_RejectsUnknownKind(t *testing.T) {
	var b Bundle
	if err := json.Unmarshal([]byte(`[{"kind":"teleport"}]`), &b); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestBundle_NilEffect(t *testing.T) {
	b := Bundle{Sound{Sound: world.SoundCreeperPrimed}, nil}

	if _, err := json.Marshal(b); !errors.Is(err, ErrNilEffect) {
		t.Fatalf("expected ErrNilEffect, got %v", err)
	}
	kinds := b.Kinds()
	if len(kinds) != 1 || kinds[0] != KindSound {
		t.Fatalf("expected [%s], got %v", KindSound, kinds)
	}
}
