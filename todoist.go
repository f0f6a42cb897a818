package main

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// todoistTasks fetches today's tasks from the Todoist REST API.
type todoistTasks struct {
	token  string
	url    string
	zone   *time.Location
	client *http.Client
}

func newTodoistTasks(settings configSettings, zone *time.Location) *todoistTasks {
	return &todoistTasks{
		token: settings.GetString(sTodoToken),
		url:   settings.GetString(sTodoURL),
		zone:  zone,
		// a bounded timeout so a slow remote can't stall the refresh loop
		client: &http.Client{Timeout: settings.GetDuration(sFetchTO)},
	}
}

type todoistDue struct {
	Date     string `json:"date"`
	Datetime string `json:"datetime"`
}

type todoistItem struct {
	Content string      `json:"content"`
	Due     *todoistDue `json:"due"`
}

// dueTime extracts the time-of-day from a due datetime. Todoist sends
// either RFC3339 with an offset or a naive local datetime; a naive
// value gets our display zone attached rather than staying ambiguous.
func (tt *todoistTasks) dueTime(due *todoistDue) *timeOfDay {
	if due == nil || due.Datetime == "" {
		return nil
	}
	when, err := time.Parse(time.RFC3339, due.Datetime)
	if err != nil {
		when, err = time.ParseInLocation("2006-01-02T15:04:05", due.Datetime, tt.zone)
		if err != nil {
			return nil
		}
	}
	local := when.In(tt.zone)
	return &timeOfDay{Hour: local.Hour(), Minute: local.Minute()}
}

func (tt *todoistTasks) fetchToday(rt runtimeConfig) ([]taskRecord, error) {
	if tt.token == "" {
		return placeholderTask(eTodoToken + " not set"), nil
	}

	req, err := http.NewRequest("GET", tt.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "todoist request")
	}
	req.Header.Set("Authorization", "Bearer "+tt.token)
	q := req.URL.Query()
	q.Set("filter", "today")
	req.URL.RawQuery = q.Encode()

	resp, err := tt.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "todoist fetch")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("todoist fetch: %s", resp.Status)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "todoist read")
	}

	var items []todoistItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, errors.Wrap(err, "todoist parse")
	}

	records := make([]taskRecord, 0, len(items))
	for _, item := range items {
		records = append(records, taskRecord{
			Text: item.Content,
			Due:  tt.dueTime(item.Due),
		})
	}
	return records, nil
}
