package main

import "fmt"

// effect ids for the presentation stream
const (
	eClock = iota
	eAlarmArmed
	eAlarmTriggered
	eAlarmStopped
	eAlarmCleared
	eTasks
	eAgenda
)

type displayEffect struct {
	id  int
	val interface{}
}

// channel messaging functions
func clockEffect(s string) displayEffect {
	return displayEffect{id: eClock, val: s}
}

func alarmArmedEffect(t timeOfDay) displayEffect {
	return displayEffect{id: eAlarmArmed, val: t}
}

func alarmTriggeredEffect(t timeOfDay) displayEffect {
	return displayEffect{id: eAlarmTriggered, val: t}
}

func alarmStoppedEffect() displayEffect {
	return displayEffect{id: eAlarmStopped}
}

func alarmClearedEffect() displayEffect {
	return displayEffect{id: eAlarmCleared}
}

func tasksEffect(rows []string) displayEffect {
	return displayEffect{id: eTasks, val: rows}
}

func agendaEffect(rows []string) displayEffect {
	return displayEffect{id: eAgenda, val: rows}
}

func toRows(val interface{}) ([]string, error) {
	switch v := val.(type) {
	case []string:
		return v, nil
	default:
		return nil, fmt.Errorf("Bad type: %T", v)
	}
}

func toString(val interface{}) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("Bad type: %T", v)
	}
}
