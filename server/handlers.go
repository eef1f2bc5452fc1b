package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/crillab/gopherproof/adequacy"
	"github.com/crillab/gopherproof/bf"
	"github.com/crillab/gopherproof/proof"
)

// maxBodyBytes bounds the size of request bodies.
const maxBodyBytes = 64 << 10

type formulaRequest struct {
	Formula string `json:"formula" validate:"required,max=4096"`
}

type proofRequest struct {
	Formula string `json:"formula" validate:"required,max=4096"`
	// Start is the number of the first step.
	Start int `json:"start" validate:"min=0"`
}

type tautologyResponse struct {
	Formula   string   `json:"formula"`
	Tautology bool     `json:"tautology"`
	Variables []string `json:"variables"`
}

type proofResponse struct {
	Formula string       `json:"formula"`
	Proved  string       `json:"proved"`
	Steps   []proof.Line `json:"steps"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Offset *int   `json:"offset,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) tautology(w http.ResponseWriter, r *http.Request) {
	var req formulaRequest
	if !s.decode(w, r, &req) {
		return
	}
	f, ok := s.parse(w, req.Formula)
	if !ok {
		return
	}
	vars := f.Vars()
	if len(vars) > s.checkMax {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: fmt.Sprintf("%s: formula has %d variables, at most %d are accepted", bf.ErrTooManyVariables, len(vars), s.checkMax),
		})
		return
	}
	taut, err := f.Tautology(r.Context())
	if err != nil {
		// Only a done context can interrupt the check: Timeout answers 504 itself.
		return
	}
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name()
	}
	writeJSON(w, http.StatusOK, tautologyResponse{
		Formula:   f.String(),
		Tautology: taut,
		Variables: names,
	})
}

func (s *Server) proofs(w http.ResponseWriter, r *http.Request) {
	var req proofRequest
	if !s.decode(w, r, &req) {
		return
	}
	f, ok := s.parse(w, req.Formula)
	if !ok {
		return
	}
	l, err := s.prover.Prove(r.Context(), f)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, proofResponse{
			Formula: f.String(),
			Proved:  l.Last().String(),
			Steps:   l.Lines(req.Start),
		})
	case errors.Is(err, adequacy.ErrNotATautology), errors.Is(err, adequacy.ErrTooManyVariables):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		// Timeout answers 504 itself; a canceled client gets no answer.
	default:
		s.logger.Error("proof failed", zap.Error(err), zap.String("request_id", RequestIDFromContext(r.Context())))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not build proof"})
	}
}

// decode reads the JSON body of r into req and validates it.
// On failure, it answers 400 Bad Request and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

// parse parses expr in a scope of its own.
// On failure, it answers 400 Bad Request and returns false.
func (s *Server) parse(w http.ResponseWriter, expr string) (*bf.Formula, bool) {
	f, err := bf.ParseString(bf.NewScope(), expr)
	if err != nil {
		resp := errorResponse{Error: err.Error()}
		var perr *bf.ParseError
		if errors.As(err, &perr) {
			resp.Offset = &perr.Offset
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return nil, false
	}
	return f, true
}
