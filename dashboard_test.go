package main

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

/* things that runEffects does:

consumes the effect stream and folds it into the dashboard snapshot
the snapshot is the only thing the HTTP layer ever reads

*/

// effectSync round-trips a uniquely-tagged clock effect so the test
// knows the worker has consumed everything sent before it
func effectSync(rt runtimeConfig, token string) {
	rt.comms.effects <- clockEffect(token)
	for rt.board.snapshot().Clock != token {
		time.Sleep(time.Millisecond)
	}
}

func TestEffectsBuildSnapshot(t *testing.T) {
	rt, _, comms := testRuntime()

	wg.Add(1)
	go runEffects(rt)

	comms.effects <- clockEffect("12:34:56")
	comms.effects <- alarmArmedEffect(timeOfDay{Hour: 7, Minute: 30})
	comms.effects <- tasksEffect([]string{"Buy milk"})
	comms.effects <- agendaEffect([]string{"09:00 - 09:15: Standup"})
	effectSync(rt, "sync-1")

	s := rt.board.snapshot()
	assert.Equal(t, s.AlarmTime, "07:30")
	assert.Equal(t, s.AlarmTriggered, false)
	assert.Equal(t, s.Tasks[0], "Buy milk")
	assert.Equal(t, s.Agenda[0], "09:00 - 09:15: Standup")

	comms.effects <- alarmTriggeredEffect(timeOfDay{Hour: 7, Minute: 30})
	effectSync(rt, "sync-2")
	s = rt.board.snapshot()
	assert.Equal(t, s.AlarmTriggered, true)
	assert.Equal(t, s.AlarmTime, "07:30")

	comms.effects <- alarmStoppedEffect()
	effectSync(rt, "sync-3")
	assert.Equal(t, rt.board.snapshot().AlarmTime, "07:30")

	comms.effects <- alarmClearedEffect()
	effectSync(rt, "sync-4")
	s = rt.board.snapshot()
	assert.Equal(t, s.AlarmTime, "")
	assert.Equal(t, s.AlarmTriggered, false)

	testQuit(rt)
}

func TestRunClockPublishesTicks(t *testing.T) {
	rt, clock, comms := testRuntime()

	wg.Add(1)
	go runClock(rt)
	clock.BlockUntil(1)

	// startup tick
	e, _ := effectRead(t, comms.effects)
	assert.Equal(t, e.id, eClock)
	first, err := toString(e.val)
	assert.NilError(t, err)

	testBlockDuration(clock, dTickSleep, dTickSleep)

	e, _ = effectRead(t, comms.effects)
	second, err := toString(e.val)
	assert.NilError(t, err)
	assert.Assert(t, second != first)

	testQuit(rt)
}
