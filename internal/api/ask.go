package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopql/shopql/internal/present"
	"github.com/shopql/shopql/internal/synth"
)

type askRequest struct {
	Question string `json:"question"`
}

// handleAsk answers a question end to end. A statement the store rejects is
// still a 200 with the error inline so callers can show the generated SQL
// next to the engine message; only a synthesis failure is a gateway error.
func handleAsk(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}
	if req.Question == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "question is required"})
		return
	}

	answer, err := deps.Ask.Ask(r.Context(), "http", req.Question)
	if err != nil {
		status := http.StatusBadGateway
		var genErr *synth.GenerationError
		if !errors.As(err, &genErr) {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, map[string]any{
			"question": req.Question,
			"error":    err.Error(),
		})
		return
	}

	if answer.ExecErr != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"question": answer.Question,
			"sql":      answer.SQL,
			"error":    answer.ExecErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"question": answer.Question,
		"sql":      answer.SQL,
		"result":   present.Records(answer.Result),
	})
}
