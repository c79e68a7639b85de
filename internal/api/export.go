package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopql/shopql/internal/present"
)

// handleExport runs the same pipeline as /ask but streams the rows back as a
// parquet file instead of JSON records.
func handleExport(deps Dependencies, w http.ResponseWriter, r *http.Request) {
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
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"question": req.Question,
			"error":    err.Error(),
		})
		return
	}
	if answer.ExecErr != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"question": answer.Question,
			"sql":      answer.SQL,
			"error":    answer.ExecErr.Message,
		})
		return
	}

	payload, err := present.EncodeParquet(answer.Result)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"question": answer.Question,
			"sql":      answer.SQL,
			"error":    fmt.Sprintf("encode parquet: %v", err),
		})
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="result.parquet"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
