package main

import (
	"io/ioutil"
	"log"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/context"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// gcalAgenda lists today's events from one Google calendar using a
// service account, no interactive OAuth round-trip.
type gcalAgenda struct {
	credsFile  string
	calendarID string
}

func newGcalAgenda(settings configSettings) *gcalAgenda {
	return &gcalAgenda{
		credsFile:  settings.GetString(sCredsFile),
		calendarID: settings.GetString(sCalID),
	}
}

func (gc *gcalAgenda) getCalendarService() (*calendar.Service, error) {
	b, err := ioutil.ReadFile(gc.credsFile)
	if err != nil {
		log.Printf("Unable to read service account file: %v", err)
		return nil, errors.Wrap(err, "calendar credentials")
	}

	config, err := google.JWTConfigFromJSON(b, calendar.CalendarReadonlyScope)
	if err != nil {
		log.Printf("Unable to parse service account file to config: %v", err)
		return nil, errors.Wrap(err, "calendar credentials")
	}
	client := config.Client(context.Background())

	srv, err := calendar.New(client)
	if err != nil {
		log.Printf("Unable to retrieve calendar client: %v", err)
		return nil, errors.Wrap(err, "calendar client")
	}

	return srv, nil
}

// parseEventTime handles the two shapes a calendar boundary comes in:
// a date-time (with or without an offset) or an all-day date. Values
// without an explicit offset get zone attached.
func parseEventTime(edt *calendar.EventDateTime, zone *time.Location) (time.Time, error) {
	if edt == nil {
		return time.Time{}, errors.New("no event time")
	}
	if edt.DateTime != "" {
		when, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			when, err = time.ParseInLocation("2006-01-02T15:04:05", edt.DateTime, zone)
			if err != nil {
				return time.Time{}, errors.Wrap(err, "event time")
			}
		}
		return when, nil
	}
	when, err := time.ParseInLocation("2006-01-02", edt.Date, zone)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "event date")
	}
	return when, nil
}

func (gc *gcalAgenda) fetchToday(rt runtimeConfig) ([]agendaRecord, error) {
	now := rt.clock.Now().In(rt.zone)

	if gc.credsFile == "" || gc.calendarID == "" {
		return placeholderAgenda(now, eCredsFile+" or "+eCalID+" not set"), nil
	}

	srv, err := gc.getCalendarService()
	if err != nil {
		return nil, err
	}

	// [start of local day, start of next local day)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, rt.zone)
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := srv.Events.List(gc.calendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "calendar fetch")
	}

	log.Printf("calendar fetch complete, %d items", len(events.Items))

	records := make([]agendaRecord, 0, len(events.Items))
	for _, i := range events.Items {
		start, err := parseEventTime(i.Start, rt.zone)
		if err != nil {
			log.Println(err.Error())
			continue
		}
		end, err := parseEventTime(i.End, rt.zone)
		if err != nil {
			log.Println(err.Error())
			continue
		}
		title := i.Summary
		if title == "" {
			title = "(no title)"
		}
		records = append(records, agendaRecord{Title: title, Start: start, End: end})
	}
	return records, nil
}
