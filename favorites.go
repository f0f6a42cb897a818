package main

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"sync"
)

// favorites holds the two quick-set alarm slots, persisted as a small
// JSON file. A missing or corrupt file just means empty slots; a
// failed write is logged and forgotten. Never fatal.
type favorites struct {
	mutex sync.Mutex
	path  string
	slots [2]*timeOfDay
}

type favoritesFile struct {
	Favorites []string `json:"favorites"`
}

func loadFavorites(path string) *favorites {
	f := &favorites{path: path}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return f
	}

	var stored favoritesFile
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("Ignoring corrupt favorites file %s: %s", path, err.Error())
		return f
	}

	for i := 0; i < len(f.slots) && i < len(stored.Favorites); i++ {
		if stored.Favorites[i] == "" {
			continue
		}
		t, err := parseTimeOfDay(stored.Favorites[i])
		if err != nil {
			log.Printf("Ignoring bad favorite '%s': %s", stored.Favorites[i], err.Error())
			continue
		}
		f.slots[i] = &t
	}
	return f
}

func (f *favorites) save() {
	stored := favoritesFile{Favorites: make([]string, len(f.slots))}
	for i, t := range f.slots {
		if t != nil {
			stored.Favorites[i] = t.String()
		}
	}

	output, err := json.Marshal(stored)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if err := ioutil.WriteFile(f.path, output, 0644); err != nil {
		log.Printf("Failed to write favorites: %s", err.Error())
	}
}

func (f *favorites) get(slot int) *timeOfDay {
	if slot < 0 || slot >= len(f.slots) {
		return nil
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.slots[slot] == nil {
		return nil
	}
	t := *f.slots[slot]
	return &t
}

func (f *favorites) set(slot int, t timeOfDay) {
	if slot < 0 || slot >= len(f.slots) {
		return
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.slots[slot] = &t
	f.save()
}
