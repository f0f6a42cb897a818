package main

import (
	"fmt"
	"log"
	"time"
)

// timeOfDay is the wall-clock minute an alarm is armed for.
type timeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t timeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func parseTimeOfDay(s string) (timeOfDay, error) {
	var hour, minute int
	var rest string
	// the trailing %s only matches when something follows the minutes
	if n, _ := fmt.Sscanf(s, "%d:%d%s", &hour, &minute, &rest); n != 2 {
		return timeOfDay{}, fmt.Errorf("Bad time '%s': want HH:MM", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return timeOfDay{}, fmt.Errorf("Bad time '%s': out of range", s)
	}
	return timeOfDay{Hour: hour, Minute: minute}, nil
}

// messages for the check-alarm worker
const (
	msgArm = iota
	msgDisarm
	msgStop
)

type almStateMsg struct {
	ID  int
	val interface{}
}

func armMessage(t timeOfDay) almStateMsg {
	return almStateMsg{ID: msgArm, val: t}
}

func disarmMessage() almStateMsg {
	return almStateMsg{ID: msgDisarm}
}

func stopMessage() almStateMsg {
	return almStateMsg{ID: msgStop}
}

func toTimeOfDay(val interface{}) (timeOfDay, error) {
	switch v := val.(type) {
	case timeOfDay:
		return v, nil
	default:
		return timeOfDay{}, fmt.Errorf("Bad type: %T", v)
	}
}

// alarmState is the whole state machine: Idle (no armed time), Armed,
// Triggered, and Armed-but-fired once the dwell or a stop cut the pin.
// stop() deliberately leaves armedTime/triggered set, so one arming
// fires at most once; the user re-arms for the next day.
type alarmState struct {
	rt        runtimeConfig
	armedTime *timeOfDay
	triggered bool
	firedAt   time.Time
	silenced  bool
}

func newAlarmState(rt runtimeConfig) *alarmState {
	return &alarmState{rt: rt}
}

// writePin logs and swallows driver errors; there is no compensating
// action for a missed hardware write at this layer
func (state *alarmState) writePin(on bool) {
	if err := state.rt.pin.setActive(on); err != nil {
		log.Printf("Pin write failed (wanted %v): %s", on, err.Error())
	}
}

func (state *alarmState) arm(t timeOfDay) {
	state.armedTime = &t
	state.triggered = false
	state.silenced = false
	log.Printf("Alarm armed for %v", t)
	state.rt.comms.effects <- alarmArmedEffect(t)
}

func (state *alarmState) disarm() {
	state.armedTime = nil
	state.triggered = false
	state.silenced = false
	state.writePin(false)
	log.Println("Alarm disarmed")
	state.rt.comms.effects <- alarmClearedEffect()
}

// evaluate fires at most once per arming, on minute equality
func (state *alarmState) evaluate(now time.Time) {
	if state.armedTime == nil || state.triggered {
		return
	}
	if now.Hour() != state.armedTime.Hour || now.Minute() != state.armedTime.Minute {
		return
	}

	state.triggered = true
	state.firedAt = now
	state.writePin(true)
	log.Printf("Alarm triggered at %s", now.Format("15:04:05"))
	state.rt.comms.effects <- alarmTriggeredEffect(*state.armedTime)
}

// stop silences the pin but keeps the armed/triggered flags, per the
// one-shot semantics
func (state *alarmState) stop() {
	state.writePin(false)
	if state.triggered && !state.silenced {
		state.silenced = true
		state.rt.comms.effects <- alarmStoppedEffect()
	}
}

// shutdown is stop for the quit path: the effects consumer exits on the
// same quit signal, so the stopped effect must not block here
func (state *alarmState) shutdown() {
	state.writePin(false)
	if state.triggered && !state.silenced {
		state.silenced = true
		select {
		case state.rt.comms.effects <- alarmStoppedEffect():
		default:
		}
	}
}

// checkDwell auto-stops a triggered alarm once the dwell period is up
func (state *alarmState) checkDwell(now time.Time) {
	if !state.triggered || state.silenced {
		return
	}
	if now.Sub(state.firedAt) >= state.rt.settings.GetDuration(sDwell) {
		log.Println("Dwell elapsed, stopping alarm")
		state.stop()
	}
}

func (state *alarmState) isTriggered() bool {
	return state.triggered
}

func runCheckAlarm(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		log.Println("exiting runCheckAlarm")
	}()

	comms := rt.comms
	state := newAlarmState(rt)

	for true {
		// drain control messages first
		keepReading := true
		for keepReading {
			select {
			case <-comms.quit:
				log.Println("quit from runCheckAlarm")
				// best-effort cleanup on the way out
				state.shutdown()
				return
			case msg := <-comms.alarm:
				switch msg.ID {
				case msgArm:
					t, err := toTimeOfDay(msg.val)
					if err != nil {
						log.Println(err.Error())
						continue
					}
					state.arm(t)
				case msgDisarm:
					state.disarm()
				case msgStop:
					state.stop()
				default:
					log.Printf("Unknown msg id: %d", msg.ID)
				}
			default:
				keepReading = false
			}
		}

		// the armed time is read off the displayed clock, so compare
		// in the display zone, not the host clock's native zone
		now := rt.clock.Now().In(rt.zone)
		state.evaluate(now)
		state.checkDwell(now)

		rt.clock.Sleep(dAlarmSleep)
	}
}
