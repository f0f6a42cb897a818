package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/buger/jsonparser"
)

// settings keys
const (
	sAlarmPin    = "alarmPin"
	sPinSim      = "pin_simulated"
	sDwell       = "dwellTime"
	sFeedRefresh = "feedRefreshTime"
	sFetchTO     = "fetchTimeout"
	sHTTPAddr    = "httpAddress"
	sLogFile     = "logFile"
	sFavorites   = "favoritesFile"
	sTimeZone    = "timezone"
	sTodoToken   = "todoistToken"
	sTodoURL     = "todoistURL"
	sCredsFile   = "googleCredentials"
	sCalID       = "calendarID"
)

// env vars that override the matching settings keys
const (
	eTodoToken = "TODOIST_API_TOKEN"
	eCredsFile = "GOOGLE_SERVICE_ACCOUNT_FILE"
	eCalID     = "GOOGLE_CALENDAR_ID"
)

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sAlarmPin] = 18
	s[sDwell], _ = time.ParseDuration("30s")
	s[sFeedRefresh], _ = time.ParseDuration("10m")
	s[sFetchTO], _ = time.ParseDuration("10s")
	s[sHTTPAddr] = ":8080"
	s[sLogFile] = "/var/log/pidash.log"
	s[sFavorites] = "" // "" -> $HOME/.dashboard_alarm_favorites.json
	s[sTimeZone] = ""  // "" -> system local
	s[sTodoToken] = ""
	s[sTodoURL] = "https://api.todoist.com/rest/v2/tasks"
	s[sCredsFile] = ""
	s[sCalID] = ""

	// no hardware off the pi
	s[sPinSim] = runtime.GOARCH != "arm"

	return configSettings{settings: s}
}

func (s configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			s.settings[k] = int(val)
		case bool:
			s.settings[k], err = jsonparser.GetBoolean(data, k)
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				s.settings[k], err = time.ParseDuration(dur)
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		default:
			err = fmt.Errorf("Bad type: %T", initVal)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// credentials come from the environment so the conf file can stay
// on-device without secrets in it
func (s configSettings) settingsFromEnv() {
	pairs := map[string]string{
		eTodoToken: sTodoToken,
		eCredsFile: sCredsFile,
		eCalID:     sCalID,
	}
	for env, key := range pairs {
		if v := os.Getenv(env); v != "" {
			s.settings[key] = v
		}
	}
}

func initSettings(configFile string) configSettings {
	log.Println("initSettings")

	s := defaultSettings()

	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		// a missing conf is fine, we run on defaults + env
		log.Printf("No conf file at '%s', using defaults", configFile)
	} else {
		log.Printf("Reading configuration from '%s'", configFile)
		if err := s.settingsFromJSON(data); err != nil {
			log.Fatal(err.Error())
		}
	}

	s.settingsFromEnv()

	return s
}

func (s configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

func (s configSettings) Dump() {
	for k, v := range s.settings {
		if k == sTodoToken && v != "" {
			log.Printf("%s : %T: <redacted>\n", k, v)
			continue
		}
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
