package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/gorilla/mux"
	"github.com/jsphweid/reprise/composition"
	"github.com/jsphweid/reprise/constants"
	"github.com/jsphweid/reprise/db"
	"github.com/jsphweid/reprise/file"
	"github.com/jsphweid/reprise/model"
	"github.com/jsphweid/reprise/sample"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the scores under $SCORE_PATH over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := file.Scan(constants.GetScoreDir(), 0)
		if err != nil {
			return err
		}
		store, err := db.NewStore()
		if err != nil {
			slog.Warn("metadata disabled", "err", err)
		}
		var meta MetadataSource
		if store != nil {
			meta = store
		}

		s := NewServer(lib, meta, constants.GetAutosaveDelay())
		defer s.Flush()

		addr := ":" + constants.GetPort()
		slog.Info("serving", "addr", addr, "scores", len(lib.Entries()))
		return http.ListenAndServe(addr, s.Handler())
	},
}

// MetadataSource looks up descriptive metadata by file name.
type MetadataSource interface {
	GetMidiMetadatas(filenames []string) (map[string]model.MidiMetadata, error)
}

type openScore struct {
	path  string
	comp  *composition.Composition
	dirty bool
	save  func(f func())
}

// Server edits the scores of a library. Scores are loaded on first use and
// written back once edits have settled.
type Server struct {
	mu    sync.Mutex
	lib   *file.Library
	meta  MetadataSource
	delay time.Duration
	open  map[string]*openScore
}

func NewServer(lib *file.Library, meta MetadataSource, autosaveDelay time.Duration) *Server {
	return &Server{
		lib:   lib,
		meta:  meta,
		delay: autosaveDelay,
		open:  make(map[string]*openScore),
	}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/scores", s.HandleListScores).Methods(http.MethodGet)
	router.HandleFunc("/scores/{id}", s.HandleGetScore).Methods(http.MethodGet)
	router.HandleFunc("/scores/{id}/notes", s.HandleAddNote).Methods(http.MethodPost)
	router.HandleFunc("/scores/{id}/notes", s.HandleRemoveNote).Methods(http.MethodDelete)
	router.HandleFunc("/scores/{id}/notes", s.HandleEditNote).Methods(http.MethodPatch)
	router.HandleFunc("/scores/{id}/repeats", s.HandleAddRepeat).Methods(http.MethodPost)
	router.HandleFunc("/scores/{id}/sample", s.HandleSample).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}).Handler(router)
}

// Flush writes every edited score now.
func (s *Server) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.open {
		s.saveLocked(id)
	}
}

func (s *Server) HandleListScores(w http.ResponseWriter, r *http.Request) {
	entries := s.lib.Entries()
	var metadata map[string]model.MidiMetadata
	if s.meta != nil {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, filepath.Base(e.Path))
		}
		var err error
		metadata, err = s.meta.GetMidiMetadatas(names)
		if err != nil {
			slog.Warn("metadata lookup failed", "err", err)
		}
	}

	res := make([]model.ScoreSummary, 0, len(entries))
	for _, e := range entries {
		summary := model.ScoreSummary{Id: e.Id.String(), Path: e.Path}
		if m, ok := metadata[filepath.Base(e.Path)]; ok {
			summary.Metadata = &m
		}
		res = append(res, summary)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	s.withScore(w, r, false, func(c *composition.Composition) error {
		return nil
	})
}

func (s *Server) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	var body model.NoteBody
	if !readJSON(w, r, &body) {
		return
	}
	s.withScore(w, r, true, func(c *composition.Composition) error {
		n, err := model.NoteFromBody(body)
		if err != nil {
			return err
		}
		return c.AddNote(n)
	})
}

func (s *Server) HandleRemoveNote(w http.ResponseWriter, r *http.Request) {
	var body model.NoteBody
	if !readJSON(w, r, &body) {
		return
	}
	s.withScore(w, r, true, func(c *composition.Composition) error {
		n, err := model.NoteFromBody(body)
		if err != nil {
			return err
		}
		return c.RemoveNote(n)
	})
}

func (s *Server) HandleEditNote(w http.ResponseWriter, r *http.Request) {
	var body model.EditNoteBody
	if !readJSON(w, r, &body) {
		return
	}
	s.withScore(w, r, true, func(c *composition.Composition) error {
		n, err := model.NoteFromBody(body.Note)
		if err != nil {
			return err
		}
		field, err := model.ParseNoteField(body.Field)
		if err != nil {
			return err
		}
		return c.EditNote(n, field, body.Value)
	})
}

func (s *Server) HandleAddRepeat(w http.ResponseWriter, r *http.Request) {
	var body model.RepeatBody
	if !readJSON(w, r, &body) {
		return
	}
	s.withScore(w, r, true, func(c *composition.Composition) error {
		rep, err := model.NewRepeat(body.GoBack, body.Mark)
		if err != nil {
			return err
		}
		return c.AddRepeat(rep)
	})
}

func (s *Server) HandleSample(w http.ResponseWriter, r *http.Request) {
	from := 0
	if v := r.URL.Query().Get("from"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("bad from %q", v))
			return
		}
		from = n
	}

	id := mux.Vars(r)["id"]
	s.mu.Lock()
	o, err := s.load(id)
	if err != nil {
		s.mu.Unlock()
		writeError(w, statusFor(err), err)
		return
	}
	excerpt, err := sample.FromComposition(o.comp, from)
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "audio/midi")
	if _, err := excerpt.WriteTo(w); err != nil {
		slog.Warn("could not write sample", "id", id, "err", err)
	}
}

// withScore runs fn on the score named in the route and answers with the
// resulting score. Edits schedule an autosave.
func (s *Server) withScore(w http.ResponseWriter, r *http.Request, edit bool, fn func(c *composition.Composition) error) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	o, err := s.load(id)
	if err == nil {
		err = fn(o.comp)
	}
	if err != nil {
		s.mu.Unlock()
		writeError(w, statusFor(err), err)
		return
	}
	if edit {
		o.dirty = true
		o.save(func() { s.save(id) })
	}
	res := scoreResponse(id, o.comp)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) load(id string) (*openScore, error) {
	if o, ok := s.open[id]; ok {
		return o, nil
	}
	path, err := s.lib.Path(id)
	if err != nil {
		return nil, err
	}
	c, err := file.Load(path)
	if c == nil {
		return nil, err
	}
	if err != nil {
		slog.Warn("skipped invalid entries", "path", path, "err", err)
	}
	o := &openScore{path: path, comp: c, save: debounce.New(s.delay)}
	s.open[id] = o
	return o, nil
}

func (s *Server) save(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked(id)
}

func (s *Server) saveLocked(id string) {
	o, ok := s.open[id]
	if !ok || !o.dirty {
		return
	}
	if err := file.Save(o.comp, o.path); err != nil {
		slog.Error("autosave failed", "path", o.path, "err", err)
		return
	}
	o.dirty = false
	slog.Debug("saved", "path", o.path)
}

func scoreResponse(id string, c *composition.Composition) model.ScoreResponse {
	res := model.ScoreResponse{
		Id:         id,
		Tempo:      c.Tempo(),
		Length:     c.Length(),
		PitchRange: []string{},
		Notes:      []model.NoteBody{},
		Repeats:    []model.RepeatBody{},
		Grid:       c.Print(),
	}
	for _, p := range c.PitchRange() {
		res.PitchRange = append(res.PitchRange, p.String())
	}
	for _, n := range c.Notes() {
		res.Notes = append(res.Notes, model.NoteToBody(n))
	}
	repeats := c.Repeats()
	for _, mark := range c.RepeatMarks() {
		res.Repeats = append(res.Repeats, model.RepeatBody{GoBack: repeats[mark].GoBack, Mark: mark})
	}
	if m, ok := c.MultiEnding(); ok {
		for _, r := range m.Repeats() {
			res.MultiEnding = append(res.MultiEnding, model.RepeatBody{GoBack: r.GoBack, Mark: r.Mark})
		}
	}
	return res
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, file.ErrUnknownScore), errors.Is(err, model.ErrNoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrInvalidPitch),
		errors.Is(err, model.ErrOctaveRange),
		errors.Is(err, model.ErrInvalidRepeat),
		errors.Is(err, model.ErrRepeatBeyondEnd),
		errors.Is(err, model.ErrNegativeStart):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode request body: %w", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("could not write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}
