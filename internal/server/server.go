// Package server exposes the controller over HTTP: a JSON API for the
// operator UI and a websocket endpoint display surfaces subscribe to.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	lumerr "github.com/eternallight/lumen/core/errors"
	"github.com/eternallight/lumen/internal/bus"
	"github.com/eternallight/lumen/internal/controller"
	"github.com/eternallight/lumen/internal/logging"
	"github.com/eternallight/lumen/internal/store"
)

// Server wires the controller, store and broadcast hub into an HTTP
// handler. The controller is not concurrency-safe, so every handler
// takes the server mutex.
type Server struct {
	mu         sync.Mutex
	controller *controller.Controller
	store      *store.Store
	hub        *bus.Hub
	preview    *bus.MiniPreview
	blobs      BlobStore
}

// BlobStore stores and serves image bytes by content digest.
type BlobStore interface {
	Get(digest string) ([]byte, error)
	Put(data []byte) (string, error)
}

// New creates a server. blobs may be nil when no image store is
// configured; the blob endpoints then return 404.
func New(ctrl *controller.Controller, st *store.Store, hub *bus.Hub, preview *bus.MiniPreview, blobs BlobStore) *Server {
	return &Server{
		controller: ctrl,
		store:      st,
		hub:        hub,
		preview:    preview,
		blobs:      blobs,
	}
}

// Handler returns the complete HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.hub.ServeWS)

	// Verse workflow
	mux.HandleFunc("/api/query", s.handleQuery)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/translation", s.handleTranslation)
	mux.HandleFunc("/api/verse/next", s.handleNextVerse)
	mux.HandleFunc("/api/verse/prev", s.handlePrevVerse)
	mux.HandleFunc("/api/broadcast", s.handleBroadcast)
	mux.HandleFunc("/api/hide", s.handleHide)
	mux.HandleFunc("/api/history", s.handleHistory)

	// Notes and manual edits
	mux.HandleFunc("/api/note", s.handleNote)
	mux.HandleFunc("/api/edit", s.handleEdit)

	// Songs
	mux.HandleFunc("/api/songs", s.handleSongs)
	mux.HandleFunc("/api/songs/select", s.handleSongSelect)
	mux.HandleFunc("/api/songs/stanza", s.handleStanza)
	mux.HandleFunc("/api/songs/broadcast", s.handleSongBroadcast)

	// Settings and visuals
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/background", s.handleBackground)
	mux.HandleFunc("/api/preview", s.handlePreview)

	// Presentations and backgrounds metadata
	mux.HandleFunc("/api/presentations", s.handlePresentations)
	mux.HandleFunc("/api/presentations/", s.handlePresentationByID)
	mux.HandleFunc("/api/backgrounds", s.handleBackgrounds)
	mux.HandleFunc("/api/backgrounds/", s.handleBackgroundByID)
	mux.HandleFunc("/api/blobs", s.handleBlobUpload)
	mux.HandleFunc("/api/blobs/", s.handleBlob)

	// Slides
	mux.HandleFunc("/api/slides/select", s.handleSlideSelect)
	mux.HandleFunc("/api/slides/step", s.handleSlideStep)
	mux.HandleFunc("/api/slides/broadcast", s.handleSlideBroadcast)

	var handler http.Handler = SecurityHeadersMiddleware(mux)
	handler = CORSMiddleware(handler)
	return logging.CombinedMiddleware(handler)
}

// ListenAndServe starts the server on the given host and port.
func (s *Server) ListenAndServe(host string, port int) error {
	logging.ServerStartup("controller", "http", port, "websocket_path", "/ws")
	return http.ListenAndServe(fmt.Sprintf("%s:%d", host, port), s.Handler())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case lumerr.Is(err, lumerr.ErrNotFound):
		status = http.StatusNotFound
	case lumerr.Is(err, lumerr.ErrInvalidInput):
		status = http.StatusBadRequest
	case lumerr.Is(err, lumerr.ErrAlreadyExists):
		status = http.StatusConflict
	case lumerr.Is(err, lumerr.ErrNoDisplay):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, lumerr.NewValidation("body", "malformed JSON: "+err.Error()))
		return false
	}
	return true
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"translation": s.controller.Translation(),
		"clients":     s.hub.ClientCount(),
	})
}
