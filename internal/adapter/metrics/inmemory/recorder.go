package inmemory

import (
	"sync"

	"thunderpunch/internal/domain/combat"
)

type TriggerCounts struct {
	Handled  uint64 `json:"handled"`
	Rejected uint64 `json:"rejected"`
	Failure  uint64 `json:"failure"`
	Effects  uint64 `json:"effects"`
}

type Snapshot struct {
	TriggerTotal   uint64                   `json:"trigger_total"`
	TriggerHandled uint64                   `json:"trigger_handled"`
	TriggerReject  uint64                   `json:"trigger_rejected"`
	TriggerFailure uint64                   `json:"trigger_failure"`
	EffectsTotal   uint64                   `json:"effects_total"`
	ByTrigger      map[string]TriggerCounts `json:"by_trigger"`
}

type Recorder struct {
	mu        sync.Mutex
	byTrigger map[combat.Trigger]TriggerCounts
}

func NewRecorder() *Recorder {
	return &Recorder{
		byTrigger: map[combat.Trigger]TriggerCounts{},
	}
}

func (r *Recorder) RecordHandled(trigger combat.Trigger, effects int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byTrigger[trigger]
	c.Handled++
	c.Effects += uint64(max(effects, 0))
	r.byTrigger[trigger] = c
}

func (r *Recorder) RecordRejected(trigger combat.Trigger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byTrigger[trigger]
	c.Rejected++
	r.byTrigger[trigger] = c
}

func (r *Recorder) RecordFailure(trigger combat.Trigger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byTrigger[trigger]
	c.Failure++
	r.byTrigger[trigger] = c
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{ByTrigger: make(map[string]TriggerCounts, len(r.byTrigger))}
	for k, c := range r.byTrigger {
		out.TriggerHandled += c.Handled
		out.TriggerReject += c.Rejected
		out.TriggerFailure += c.Failure
		out.EffectsTotal += c.Effects
		out.ByTrigger[string(k)] = c
	}
	out.TriggerTotal = out.TriggerHandled + out.TriggerReject + out.TriggerFailure
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
