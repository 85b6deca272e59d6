package services

import (
	"time"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/utils"
)

// DayInputs is everything needed to resolve one date, already loaded from storage.
type DayInputs struct {
	Date      time.Time
	Action    *models.CalendarAction // Calendar override for Date, if any
	Profile   *models.Profile
	Exception *models.WeeklyPlan // Exception whose window covers Date, if any
	Permanent *models.WeeklyPlan
}

// ResolveDay applies the resolution order: calendar action, unavailable weekday,
// active exception, permanent plan, then planned rest.
func ResolveDay(in DayInputs) models.DayStatus {
	weekday := models.WeekdayName(in.Date)
	status := models.DayStatus{Date: utils.FormatDate(in.Date), Weekday: weekday}

	if in.Action != nil {
		switch in.Action.Estado {
		case models.CalendarCompleted:
			status.Kind = models.DayCompleted
			status.Note = in.Action.Nota
			return status
		case models.CalendarForcedRest:
			status.Kind = models.DayForcedRest
			status.Note = in.Action.Nota
			return status
		}
	}

	if in.Profile.IsUnavailable(weekday) {
		status.Kind = models.DayBlocked
		return status
	}

	if in.Exception != nil && in.Exception.Covers(in.Date) {
		if entry, ok := in.Exception.Day(weekday); ok {
			return withEntry(status, models.PlanKindException, entry)
		}
	}
	if in.Permanent != nil {
		if entry, ok := in.Permanent.Day(weekday); ok {
			return withEntry(status, models.PlanKindPermanent, entry)
		}
	}

	status.Kind = models.DayPlannedRest
	return status
}

func withEntry(status models.DayStatus, source models.PlanKind, entry *models.DayEntry) models.DayStatus {
	status.Source = source
	status.Entry = entry
	if entry.IsRest() {
		status.Kind = models.DayPlannedRest
	} else {
		status.Kind = models.DayTraining
	}
	return status
}

// EffectiveWeek overlays the exception's days on the permanent plan's days.
func EffectiveWeek(permanent, exception *models.WeeklyPlan) (models.Week, error) {
	week, err := permanent.Week()
	if err != nil {
		return nil, err
	}
	if exception == nil {
		return week, nil
	}
	overlay, err := exception.Week()
	if err != nil {
		return nil, err
	}
	return week.Merge(overlay), nil
}
