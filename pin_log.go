package main

import (
	"fmt"
	"log"
)

// logPin stands in for the GPIO pin off-hardware. Every write succeeds
// and is recorded so tests can audit the pin history.
type logPin struct {
	state      bool
	writes     int
	audit      []string
	disableLog bool
	failWith   error // force the next writes to fail, for tests
}

func (lp *logPin) initialize() error {
	lp.state = false
	lp.writes = 0
	lp.audit = make([]string, 0)
	return nil
}

func (lp *logPin) setActive(on bool) error {
	if lp.failWith != nil {
		return lp.failWith
	}
	lp.state = on
	lp.writes++
	lp.audit = append(lp.audit, fmt.Sprintf("Set pin to %v", on))
	if !lp.disableLog {
		log.Printf("Set pin to %v", on)
	}
	return nil
}

func (lp *logPin) lastState() bool {
	return lp.state
}

func (lp *logPin) teardown() {
	lp.state = false
}
