package combat

import (
	"fmt"
	"time"

	"thunderpunch/internal/domain/world"
)

type DayPeriod string

const (
	PeriodMorning   DayPeriod = "Morning"
	PeriodAfternoon DayPeriod = "Afternoon"
	PeriodEvening   DayPeriod = "Evening"
	PeriodNight     DayPeriod = "Night"
)

var periodWorldTicks = map[DayPeriod]int64{
	PeriodMorning:   1000,
	PeriodAfternoon: 6000,
	PeriodEvening:   12000,
	PeriodNight:     18000,
}

func DayPeriodAt(t time.Time) DayPeriod {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return PeriodMorning
	case h >= 12 && h < 18:
		return PeriodAfternoon
	case h >= 18 && h < 22:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

// WorldTicks is the in-game time of day forced for the period.
func (p DayPeriod) WorldTicks() int64 {
	return periodWorldTicks[p]
}

func Greeting(t time.Time) string {
	return fmt.Sprintf("Good %s! Time is %s", DayPeriodAt(t), t.Format(time.TimeOnly))
}

type WeekdayBonus string

const (
	BonusNone         WeekdayBonus = ""
	BonusRegeneration WeekdayBonus = "regeneration"
	BonusFullHeal     WeekdayBonus = "full_heal"
)

type WeekdayRule struct {
	Creature world.EntityKind
	Bonus    WeekdayBonus
}

var weekdayRules = [7]WeekdayRule{
	{Creature: world.EntityOcelot},
	{Creature: world.EntitySpider},
	{Creature: world.EntityZombieVillager},
	{Creature: world.EntityBlaze},
	{Creature: world.EntityWitch, Bonus: BonusRegeneration},
	{Creature: world.EntityWolf, Bonus: BonusFullHeal},
	{Creature: world.EntityWolf, Bonus: BonusFullHeal},
}

// WeekdayRuleFor maps an ISO weekday (1=Monday..7=Sunday) to its spawn.
func WeekdayRuleFor(isoWeekday int) (WeekdayRule, bool) {
	if isoWeekday < 1 || isoWeekday > 7 {
		return WeekdayRule{}, false
	}
	return weekdayRules[isoWeekday-1], true
}

func ISOWeekday(t time.Time) int {
	if wd := t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

var specialDateEpoch = time.Date(2011, time.July, 11, 0, 0, 0, 0, time.UTC)

// SecondsSinceEpochDate counts whole seconds between the start of the epoch
// date and the start of t's calendar date.
func SecondsSinceEpochDate(t time.Time) int64 {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int64(day.Sub(specialDateEpoch) / time.Second)
}

func IsSpecialDate(t time.Time) bool {
	return SecondsSinceEpochDate(t)%SpecialDateModulus == 0
}

// HungerRestore returns the food and saturation granted on a hunger tick.
func HungerRestore(t time.Time) (food int, saturation float64) {
	if t.Second()%2 == 0 {
		return 1, 1.0
	}
	return 0, 0.5
}

func IsHungerTick(worldTick int64) bool {
	return worldTick%HungerTickInterval == 0
}
