// Package handler contains the terminal stages of the request pipelines. Each
// handler decodes the request, calls the service layer and converts the
// outcome into a terminal response.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fobfinder/fobfinder-go/internal/pipeline"
)

// decodeBody decodes the JSON request body into dst, capped at 1MB. A nil
// return means the body decoded; otherwise the returned result terminates the
// pipeline.
func decodeBody(r *http.Request, dst any) *pipeline.Result {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			res := pipeline.Terminal(http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return &res
		}
		res := pipeline.Terminal(http.StatusBadRequest, errorResponse("invalid request body"))
		return &res
	}
	return nil
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
