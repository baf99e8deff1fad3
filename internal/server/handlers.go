package server

import (
	"encoding/json"
	"errors"
	"net/http"

	enigmaerrors "github.com/ianfhunter/enigma/pkg/errors"
	"github.com/ianfhunter/enigma/pkg/engine"
	"github.com/ianfhunter/enigma/pkg/puzzle"
	"github.com/ianfhunter/enigma/pkg/solver"
)

// maxBodyBytes bounds request bodies. The largest legitimate payload is a
// 32x32 puzzle plus grid, far under this.
const maxBodyBytes = 1 << 20

// puzzleRequest is the shared request shape for solve/validate/reveal.
type puzzleRequest struct {
	Puzzle *puzzle.Puzzle    `json:"puzzle"`
	Grid   puzzle.Assignment `json:"grid,omitempty"`

	// Solve options
	Limit     int `json:"limit,omitempty"`
	MaxStates int `json:"max_states,omitempty"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var opts engine.Options
	if !decodeBody(w, r, &opts) {
		return
	}

	res, err := s.runner.Generate(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"puzzle":    res.Puzzle,
		"cache_hit": res.CacheInfo.PuzzleHit,
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePuzzleRequest(w, r)
	if !ok {
		return
	}

	res, err := s.runner.Solve(r.Context(), req.Puzzle, req.Grid, solver.Options{
		Limit:     req.Limit,
		MaxStates: req.MaxStates,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"solutions": res.Solutions,
		"states":    res.States,
		"status":    res.Status.String(),
		"unique":    res.Unique(),
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePuzzleRequest(w, r)
	if !ok {
		return
	}
	if req.Grid == nil {
		writeError(w, enigmaerrors.New(enigmaerrors.ErrCodeInvalidGrid, "grid is required"))
		return
	}

	report, err := s.runner.Validate(r.Context(), req.Puzzle, req.Grid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bad":    report.Bad,
		"solved": report.Solved,
	})
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePuzzleRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"solution": s.runner.Reveal(req.Puzzle),
	})
}

func decodePuzzleRequest(w http.ResponseWriter, r *http.Request) (*puzzleRequest, bool) {
	var req puzzleRequest
	if !decodeBody(w, r, &req) {
		return nil, false
	}
	if req.Puzzle == nil {
		writeError(w, enigmaerrors.New(enigmaerrors.ErrCodeInvalidInput, "puzzle is required"))
		return nil, false
	}
	if err := enigmaerrors.ValidatePuzzleID(req.Puzzle.ID); err != nil {
		writeError(w, err)
		return nil, false
	}
	return &req, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		writeError(w, enigmaerrors.Wrap(enigmaerrors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps structured error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var resp errorResponse
	resp.Error.Code = string(enigmaerrors.ErrCodeInternal)
	resp.Error.Message = enigmaerrors.UserMessage(err)

	status := http.StatusInternalServerError
	var e *enigmaerrors.Error
	if errors.As(err, &e) {
		resp.Error.Code = string(e.Code)
		switch e.Code {
		case enigmaerrors.ErrCodeInvalidInput,
			enigmaerrors.ErrCodeInvalidFamily,
			enigmaerrors.ErrCodeInvalidSize,
			enigmaerrors.ErrCodeInvalidGrid,
			enigmaerrors.ErrCodeInvalidID,
			enigmaerrors.ErrCodeInvalidFormat:
			status = http.StatusBadRequest
		case enigmaerrors.ErrCodeNotFound,
			enigmaerrors.ErrCodePuzzleNotFound,
			enigmaerrors.ErrCodeFileNotFound:
			status = http.StatusNotFound
		case enigmaerrors.ErrCodeBoundExceeded:
			status = http.StatusUnprocessableEntity
		}
	}
	writeJSON(w, status, resp)
}
