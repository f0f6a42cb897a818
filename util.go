// utility functions
package main

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var wg sync.WaitGroup

// worker cadences
const (
	dAlarmSleep = time.Second
	dTickSleep  = time.Second
	dFeedSleep  = time.Second
)

type commChannels struct {
	quit    chan struct{}
	alarm   chan almStateMsg
	feeds   chan feedMsg
	effects chan displayEffect
}

type runtimeConfig struct {
	settings  configSettings
	comms     commChannels
	clock     clockwork.Clock
	zone      *time.Location
	pin       pinDriver
	tasks     taskFeed
	agenda    agendaFeed
	favorites *favorites
	board     *dashboard
}

func initCommChannels() commChannels {
	return commChannels{
		quit:    make(chan struct{}, 1),
		alarm:   make(chan almStateMsg, 1),
		feeds:   make(chan feedMsg, 1),
		effects: make(chan displayEffect, 10),
	}
}

func displayZone(settings configSettings) *time.Location {
	name := settings.GetString(sTimeZone)
	if name == "" {
		return time.Local
	}
	zone, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Bad timezone '%s', falling back to local: %v", name, err)
		return time.Local
	}
	return zone
}

func favoritesPath(settings configSettings) string {
	if path := settings.GetString(sFavorites); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".dashboard_alarm_favorites.json")
}

func initRuntime(settings configSettings) runtimeConfig {
	zone := displayZone(settings)

	var pin pinDriver
	if settings.GetBool(sPinSim) {
		pin = &logPin{}
	} else {
		pin = &rpioPin{pin: settings.GetInt(sAlarmPin)}
	}

	return runtimeConfig{
		settings:  settings,
		comms:     initCommChannels(),
		clock:     clockwork.NewRealClock(),
		zone:      zone,
		pin:       pin,
		tasks:     newTodoistTasks(settings, zone),
		agenda:    newGcalAgenda(settings),
		favorites: loadFavorites(favoritesPath(settings)),
		board:     &dashboard{},
	}
}

func initTestRuntime(settings configSettings) runtimeConfig {
	return runtimeConfig{
		settings:  settings,
		comms:     initCommChannels(),
		clock:     clockwork.NewFakeClock(),
		zone:      time.UTC,
		pin:       &logPin{disableLog: true},
		tasks:     &testTasks{},
		agenda:    &testAgenda{},
		favorites: loadFavorites(favoritesPath(settings)),
		board:     &dashboard{},
	}
}

// GetOutboundIP - get the preferred outbound ip of this machine
func GetOutboundIP() net.IP {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return net.IPv4zero
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)

	return localAddr.IP
}
