package main

// pinDriver is the one output pin the alarm drives. The real version
// talks to the BCM GPIO, the log version just records writes.
type pinDriver interface {
	initialize() error
	setActive(on bool) error
	lastState() bool
	teardown()
}

type taskFeed interface {
	fetchToday(rt runtimeConfig) ([]taskRecord, error)
}

type agendaFeed interface {
	fetchToday(rt runtimeConfig) ([]agendaRecord, error)
}
