package main

import (
	"log"
	"sync"
)

// dashboard is the presentation snapshot served to the UI. runEffects
// is its only writer; HTTP handlers read through snapshot().
type dashboard struct {
	mutex sync.RWMutex
	state dashboardStatus
}

type dashboardStatus struct {
	Clock          string   `json:"clock"`
	AlarmTime      string   `json:"alarmTime"`
	AlarmTriggered bool     `json:"alarmTriggered"`
	Message        string   `json:"message"`
	Tasks          []string `json:"tasks"`
	Agenda         []string `json:"agenda"`
}

func (d *dashboard) snapshot() dashboardStatus {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	s := d.state
	s.Tasks = append([]string(nil), d.state.Tasks...)
	s.Agenda = append([]string(nil), d.state.Agenda...)
	return s
}

func (d *dashboard) update(apply func(*dashboardStatus)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	apply(&d.state)
}

func runEffects(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		log.Println("exiting runEffects")
	}()

	comms := rt.comms
	board := rt.board

	for true {
		select {
		case <-comms.quit:
			log.Println("quit from runEffects")
			return
		case e := <-comms.effects:
			switch e.id {
			case eClock:
				s, _ := toString(e.val)
				board.update(func(d *dashboardStatus) { d.Clock = s })
			case eAlarmArmed:
				t, err := toTimeOfDay(e.val)
				if err != nil {
					log.Println(err.Error())
					continue
				}
				board.update(func(d *dashboardStatus) {
					d.AlarmTime = t.String()
					d.AlarmTriggered = false
					d.Message = "Alarm set for " + t.String()
				})
			case eAlarmTriggered:
				t, err := toTimeOfDay(e.val)
				if err != nil {
					log.Println(err.Error())
					continue
				}
				board.update(func(d *dashboardStatus) {
					d.AlarmTriggered = true
					d.Message = "Alarm active! (" + t.String() + ")"
				})
			case eAlarmStopped:
				board.update(func(d *dashboardStatus) {
					d.Message = "Alarm silenced"
				})
			case eAlarmCleared:
				board.update(func(d *dashboardStatus) {
					d.AlarmTime = ""
					d.AlarmTriggered = false
					d.Message = "Alarm off"
				})
			case eTasks:
				rows, err := toRows(e.val)
				if err != nil {
					log.Println(err.Error())
					continue
				}
				board.update(func(d *dashboardStatus) { d.Tasks = rows })
			case eAgenda:
				rows, err := toRows(e.val)
				if err != nil {
					log.Println(err.Error())
					continue
				}
				board.update(func(d *dashboardStatus) { d.Agenda = rows })
			default:
				log.Printf("Unknown effect id: %d", e.id)
			}
		}
	}
}

// runClock publishes the display time once per second
func runClock(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		log.Println("exiting runClock")
	}()

	comms := rt.comms
	last := ""

	for true {
		select {
		case <-comms.quit:
			log.Println("quit from runClock")
			return
		default:
		}

		now := rt.clock.Now().In(rt.zone)
		if s := now.Format("15:04:05"); s != last {
			last = s
			select {
			case comms.effects <- clockEffect(s):
			default:
				// drop a tick rather than stall on a busy consumer
			}
		}

		rt.clock.Sleep(dTickSleep)
	}
}
