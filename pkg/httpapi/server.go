package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/anggasct/junction"
)

// Server routes the JSON API for one controller session
type Server struct {
	controller *junction.Controller
	logbook    *Logbook
	clock      junction.Clock
	mux        *http.ServeMux
}

// NewServer wires a controller to the HTTP API. The server registers the
// logbook as the controller's notice sink; clock drives both /api/tick
// timing and log timestamps.
func NewServer(controller *junction.Controller, clock junction.Clock) *Server {
	s := &Server{
		controller: controller,
		logbook:    NewLogbook(clock),
		clock:      clock,
		mux:        http.NewServeMux(),
	}
	controller.AddLogSink(s.logbook.Sink())

	s.mux.HandleFunc("/api/status", s.handleStatus)
	s.mux.HandleFunc("/api/set_mode", s.handleSetMode)
	s.mux.HandleFunc("/api/set_counts", s.handleSetCounts)
	s.mux.HandleFunc("/api/preset", s.handlePreset)
	s.mux.HandleFunc("/api/config", s.handleConfig)
	s.mux.HandleFunc("/api/control", s.handleControl)
	s.mux.HandleFunc("/api/tick", s.handleTick)
	return s
}

// Logbook returns the server's rolling transition log
func (s *Server) Logbook() *Logbook {
	return s.logbook
}

// ServeHTTP implements http.Handler with permissive CORS for local
// frontend testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	s.writeState(w, s.controller.Status())
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode string `json:"mode"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	mode, err := junction.ParseMode(body.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mode")
		return
	}
	snap, err := s.controller.SetMode(mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeState(w, snap)
}

func (s *Server) handleSetCounts(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.Number
	if !decodeBody(w, r, &body) {
		return
	}
	counts := make(map[junction.Direction]int)
	for _, d := range junction.Order {
		raw, ok := body[d.String()]
		if !ok {
			continue
		}
		// Fractional or negative values are skipped per direction; the
		// rest of the request still applies
		n, err := raw.Int64()
		if err != nil || n < 0 {
			continue
		}
		counts[d] = int(n)
	}
	s.writeState(w, s.controller.SetCounts(counts))
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Preset []int `json:"preset"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	var values [junction.NumDirections]int
	copy(values[:], body.Preset)
	snap := s.controller.Preset(values)
	s.logbook.Append("Preset vehicles updated")
	s.writeState(w, snap)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GreenTime       *float64 `json:"green_time"`
		YellowTime      *float64 `json:"yellow_time"`
		ReleaseInterval *float64 `json:"release_interval"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	var update junction.ConfigUpdate
	if body.GreenTime != nil {
		d := junction.Seconds(*body.GreenTime)
		update.GreenTime = &d
	}
	if body.YellowTime != nil {
		d := junction.Seconds(*body.YellowTime)
		update.YellowTime = &d
	}
	if body.ReleaseInterval != nil {
		d := junction.Seconds(*body.ReleaseInterval)
		update.ReleaseInterval = &d
	}
	snap, err := s.controller.SetConfig(update)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeState(w, snap)
}

func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Action string `json:"action"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	action, err := junction.ParseAction(body.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	snap, err := s.controller.Control(action)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeState(w, snap)
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	s.writeState(w, s.controller.Tick(s.clock.Now()))
}

func (s *Server) writeState(w http.ResponseWriter, snap junction.Snapshot) {
	writeJSON(w, http.StatusOK, statePayload(snap, s.logbook.Recent(logServed)))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
