package main

import (
	"fmt"
	"log"
	"time"
)

// taskRecord is one row of the task list. Due is nil for tasks without
// a time-of-day.
type taskRecord struct {
	Text string
	Due  *timeOfDay
}

// agendaRecord is one row of the calendar agenda.
type agendaRecord struct {
	Title string
	Start time.Time
	End   time.Time
}

// messages for the feed-refresh worker
const (
	msgRefresh = iota
)

type feedMsg struct {
	ID int
}

func refreshMessage() feedMsg {
	return feedMsg{ID: msgRefresh}
}

// placeholderTask substitutes for real rows when configuration is
// missing; it is a normal record, never an error
func placeholderTask(text string) []taskRecord {
	return []taskRecord{{Text: text}}
}

func placeholderAgenda(now time.Time, text string) []agendaRecord {
	return []agendaRecord{{Title: text, Start: now, End: now.Add(time.Hour)}}
}

func formatTask(t taskRecord) string {
	if t.Due == nil {
		return t.Text
	}
	return fmt.Sprintf("%s (due %v)", t.Text, *t.Due)
}

func formatAgenda(a agendaRecord, zone *time.Location) string {
	start := a.Start.In(zone)
	end := a.End.In(zone)
	return fmt.Sprintf("%s - %s: %s", start.Format("15:04"), end.Format("15:04"), a.Title)
}

func refreshFeeds(rt runtimeConfig) {
	comms := rt.comms

	// one feed failing never disturbs the other
	tasks, err := rt.tasks.fetchToday(rt)
	var taskRows []string
	if err != nil {
		log.Printf("Task fetch failed: %s", err.Error())
		taskRows = []string{"Todoist error: " + err.Error()}
	} else {
		taskRows = make([]string, 0, len(tasks))
		for _, t := range tasks {
			taskRows = append(taskRows, formatTask(t))
		}
	}
	comms.effects <- tasksEffect(taskRows)

	agenda, err := rt.agenda.fetchToday(rt)
	var agendaRows []string
	if err != nil {
		log.Printf("Agenda fetch failed: %s", err.Error())
		agendaRows = []string{"Calendar error: " + err.Error()}
	} else {
		agendaRows = make([]string, 0, len(agenda))
		for _, a := range agenda {
			agendaRows = append(agendaRows, formatAgenda(a, rt.zone))
		}
	}
	comms.effects <- agendaEffect(agendaRows)
}

func runRefreshFeeds(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		log.Println("exiting runRefreshFeeds")
	}()

	settings := rt.settings
	comms := rt.comms

	var lastRefresh time.Time

	for true {
		refresh := false
		// zero lastRefresh forces the startup fetch
		if lastRefresh.IsZero() || rt.clock.Now().Sub(lastRefresh) > settings.GetDuration(sFeedRefresh) {
			refresh = true
		}

		keepReading := true
		for keepReading {
			select {
			case <-comms.quit:
				log.Println("quit from runRefreshFeeds")
				return
			case msg := <-comms.feeds:
				switch msg.ID {
				case msgRefresh:
					refresh = true
				default:
					log.Printf("Unknown msg id: %d", msg.ID)
				}
			default:
				keepReading = false
			}
		}

		if refresh {
			refreshFeeds(rt)
			lastRefresh = rt.clock.Now()
		}

		rt.clock.Sleep(dFeedSleep)
	}
}
