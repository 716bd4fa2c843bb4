package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/Harshavardhanyedla/AttendX/internal/period"
)

const (
	calendarProductID = "-//AttendX//Class Timetable//EN"
	icalLocalLayout   = "20060102T150405"
)

// TimetableCalendar renders the whole weekly timetable as an iCalendar
// feed: one weekly recurring event per scheduled period, anchored on the
// current week.
func (s *rosterService) TimetableCalendar(ctx context.Context) (*bytes.Buffer, string, error) {
	now := s.clock.Now()
	weekStart := period.WeekStart(now)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName("Class timetable")
	tzid := calendarTZID(now.Location())
	if tzid != "" {
		cal.SetXWRTimezone(tzid)
	}

	events := 0
	for offset, day := range period.Weekdays[1:] {
		entries, err := s.repo.Timetable.ListByWeekday(ctx, day)
		if err != nil {
			s.logger.Error("list timetable failed", zap.String("day", day), zap.Error(err))
			return nil, "", err
		}
		date := weekStart.AddDate(0, 0, offset)
		for _, e := range entries {
			tr, ok := period.TimeRange(e.Period)
			if !ok {
				continue
			}
			start, end := tr.On(date)
			brief := subjectBrief(e.Subject, e.SubjectID)

			ev := cal.AddEvent(fmt.Sprintf("%s-P%d@attendx", day, e.Period))
			ev.SetDtStampTime(now.UTC())
			setEventTime(ev, ics.ComponentPropertyDtStart, start, tzid)
			setEventTime(ev, ics.ComponentPropertyDtEnd, end, tzid)
			ev.SetSummary(summaryOf(brief.Name, brief.Code))
			ev.SetDescription(fmt.Sprintf("%s %s", period.Label(e.Period), tr))
			ev.SetProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY")
			events++
		}
	}

	s.logger.Debug("timetable calendar rendered", zap.Int("events", events))
	return bytes.NewBufferString(cal.Serialize()), "timetable.ics", nil
}

// calendarTZID names loc as an IANA zone a client can resolve, or returns
// "" for UTC and fixed offsets.
func calendarTZID(loc *time.Location) string {
	name := loc.String()
	if name == "" || name == "UTC" || name == "Local" {
		return ""
	}
	if _, err := time.LoadLocation(name); err != nil {
		return ""
	}
	return name
}

// setEventTime writes wall-clock time with a TZID so a weekly RRULE keeps
// the local start across DST changes. Without a zone it falls back to UTC.
func setEventTime(ev *ics.VEvent, prop ics.ComponentProperty, t time.Time, tzid string) {
	if tzid == "" {
		ev.SetProperty(prop, t.UTC().Format(icalLocalLayout)+"Z")
		return
	}
	ev.SetProperty(prop, t.Format(icalLocalLayout), &ics.KeyValues{
		Key:   string(ics.ParameterTzid),
		Value: []string{tzid},
	})
}

func summaryOf(name, code string) string {
	switch {
	case name == "":
		return UnknownSubject
	case code == "":
		return name
	}
	return fmt.Sprintf("%s (%s)", name, code)
}
