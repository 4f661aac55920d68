package ports

import "thunderpunch/internal/domain/combat"

type TriggerMetrics interface {
	RecordHandled(trigger combat.Trigger, effects int)
	RecordRejected(trigger combat.Trigger)
	RecordFailure(trigger combat.Trigger)
}
