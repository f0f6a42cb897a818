package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

// pidash: headless day-dashboard daemon for a pi touchscreen.
// clock + one-shot GPIO alarm + today's tasks + today's agenda,
// served to the UI over a small JSON API.

const defaultConfig = "/etc/default/pidash/pidash.conf"

func configPath() string {
	if path := os.Getenv("PIDASH_CONFIG"); path != "" {
		return path
	}
	return defaultConfig
}

func main() {
	// .env seeds the credential env vars when present
	godotenv.Load()

	settings := initSettings(configPath())

	logf, err := setupLogging(settings, false)
	if err != nil {
		log.Printf("Log setup failed, staying on stderr: %v", err)
	}
	if logf != nil {
		defer logf.Close()
	}

	settings.Dump()

	rt := initRuntime(settings)

	if err := rt.pin.initialize(); err != nil {
		// keep running, the alarm state machine still works
		log.Printf("Pin init failed: %v", err)
	}
	defer rt.pin.teardown()

	wg.Add(4)
	go runEffects(rt)
	go runClock(rt)
	go runCheckAlarm(rt)
	go runRefreshFeeds(rt)

	web := &webService{}
	web.launch(rt, settings.GetString(sHTTPAddr))
	log.Printf("dashboard API on http://%v%s", GetOutboundIP(), settings.GetString(sHTTPAddr))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Println("shutting down")
	close(rt.comms.quit)
	web.stop()
	wg.Wait()
}
