package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"golang.org/x/net/context"
)

// webService is the JSON API the touchscreen UI talks to. Handlers
// never touch worker state directly: mutations go through the comms
// channels, reads come from the dashboard snapshot.
type webService struct {
	srv *http.Server
	rt  runtimeConfig
}

type timeRequest struct {
	Time string `json:"time"`
}

type statusResponse struct {
	dashboardStatus
	Favorites []string `json:"favorites"`
}

func (h *webService) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/status", h.apiStatus).Methods("GET")
	r.HandleFunc("/api/alarm", h.apiSetAlarm).Methods("POST")
	r.HandleFunc("/api/alarm", h.apiClearAlarm).Methods("DELETE")
	r.HandleFunc("/api/alarm/stop", h.apiStopAlarm).Methods("POST")
	r.HandleFunc("/api/favorites", h.apiFavorites).Methods("GET")
	r.HandleFunc("/api/favorites/{slot}", h.apiSaveFavorite).Methods("POST")
	r.HandleFunc("/api/refresh", h.apiRefresh).Methods("POST")

	return r
}

func (h *webService) launch(rt runtimeConfig, addr string) {
	h.rt = rt
	h.srv = &http.Server{Addr: addr, Handler: h.router()}

	wg.Add(1)

	go func() {
		defer wg.Done()
		log.Println("starting dashboard http server")
		err := h.srv.ListenAndServe()
		log.Print(err)
		log.Print("Exiting dashboard http server")
	}()
}

func (h *webService) stop() {
	h.srv.Shutdown(context.Background())
}

func writeJSON(w http.ResponseWriter, code int, val interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(val)
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (h *webService) favoriteStrings() []string {
	favs := make([]string, 2)
	for i := range favs {
		if t := h.rt.favorites.get(i); t != nil {
			favs[i] = t.String()
		}
	}
	return favs
}

func (h *webService) apiStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		dashboardStatus: h.rt.board.snapshot(),
		Favorites:       h.favoriteStrings(),
	})
}

func readTime(r *http.Request) (timeOfDay, error) {
	var req timeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return timeOfDay{}, err
	}
	return parseTimeOfDay(req.Time)
}

func (h *webService) apiSetAlarm(w http.ResponseWriter, r *http.Request) {
	t, err := readTime(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.rt.comms.alarm <- armMessage(t)
	writeOK(w)
}

func (h *webService) apiClearAlarm(w http.ResponseWriter, r *http.Request) {
	h.rt.comms.alarm <- disarmMessage()
	writeOK(w)
}

func (h *webService) apiStopAlarm(w http.ResponseWriter, r *http.Request) {
	h.rt.comms.alarm <- stopMessage()
	writeOK(w)
}

func (h *webService) apiFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"favorites": h.favoriteStrings()})
}

func (h *webService) apiSaveFavorite(w http.ResponseWriter, r *http.Request) {
	slot, err := strconv.Atoi(mux.Vars(r)["slot"])
	if err != nil || slot < 0 || slot > 1 {
		writeError(w, http.StatusBadRequest, "slot must be 0 or 1")
		return
	}
	t, err := readTime(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.rt.favorites.set(slot, t)
	writeOK(w)
}

func (h *webService) apiRefresh(w http.ResponseWriter, r *http.Request) {
	h.rt.comms.feeds <- refreshMessage()
	writeOK(w)
}
