// Package pipeline runs an ordered chain of request stages with explicit
// short-circuiting. Each stage returns either a continue signal (optionally
// carrying an augmented context) or a terminal response; the first terminal
// response stops the chain. This replaces callback-style middleware chaining:
// a stage cannot both write a response and advance the chain.
package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// Result is the outcome of a single stage.
type Result struct {
	ctx      context.Context
	terminal bool
	status   int
	body     any
}

// Continue advances the pipeline to the next stage. The given context (often
// augmented with authentication state) is attached to the request for all
// subsequent stages.
func Continue(ctx context.Context) Result {
	return Result{ctx: ctx}
}

// Terminal produces a response and stops the pipeline. A string body is
// written verbatim as plain text; anything else is JSON-encoded.
func Terminal(status int, body any) Result {
	return Result{terminal: true, status: status, body: body}
}

// Stage is a single step of the pipeline. It inspects the request and decides
// whether to continue or terminate.
type Stage func(r *http.Request) Result

// Run executes stages strictly in order. As soon as a stage returns a
// terminal result its response is written and no later stage runs. Exhausting
// the stage list without a terminal response is a programming error: the
// final stage of every pipeline is a handler that always terminates.
func Run(w http.ResponseWriter, r *http.Request, stages ...Stage) {
	for _, stage := range stages {
		res := stage(r)
		if res.terminal {
			write(w, res.status, res.body)
			return
		}
		if res.ctx != nil && res.ctx != r.Context() {
			r = r.WithContext(res.ctx)
		}
	}

	slog.Error("pipeline exhausted without a terminal response", "method", r.Method, "path", r.URL.Path)
	write(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// Handler adapts a stage list into an http.HandlerFunc for route wiring.
func Handler(stages ...Stage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Run(w, r, stages...)
	}
}

func write(w http.ResponseWriter, status int, body any) {
	if s, ok := body.(string); ok {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(s))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
