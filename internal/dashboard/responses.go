package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "mortalidad/pkg/domain-errors"
)

// viewResponse is the envelope for a single aggregated view. Rows keep the
// stable order computed by report; clients must not re-sort.
type viewResponse struct {
	View string `json:"view"`
	Rows any    `json:"rows"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError centralizes domain error translation so every handler responds
// with the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := string(dErrors.CodeInternal)
	var de *dErrors.Error
	if errors.As(err, &de) {
		status = dErrors.ToHTTPStatus(de.Code)
		code = string(de.Code)
	}
	writeJSON(w, status, map[string]string{"error": code})
}
