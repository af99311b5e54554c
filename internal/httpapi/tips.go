package httpapi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"ivarberg/internal/http/middleware"
	"ivarberg/internal/logging"
	"ivarberg/internal/ratelimit"
	"ivarberg/internal/tips"
)

// Messages returned by the tip endpoint.
const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgRateLimited      = "För många försök. Vänta 5 minuter innan du skickar in fler evenemang."
	MsgInvalidRequest   = "Ogiltig förfrågan"
	MsgTipNotStored     = "Kunde inte spara evenemangstipset. Försök igen senare."
)

const maxTipBody = 64 << 10

type tipResponse struct {
	Success bool   `json:"success"`
	TipID   int64  `json:"tip_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleSubmitTip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, tipResponse{Error: MsgMethodNotAllowed})
		return
	}

	var sub tips.Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTipBody)).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, tipResponse{Error: MsgInvalidRequest})
		return
	}

	id, err := s.tips.Submit(r.Context(), ratelimit.ClientIdentifier(r), sub)
	if err != nil {
		var limited *tips.RateLimitError
		var invalid *tips.ValidationError
		switch {
		case errors.As(err, &limited):
			seconds := int(math.Ceil(limited.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			writeJSON(w, http.StatusTooManyRequests, tipResponse{Error: MsgRateLimited})
		case errors.As(err, &invalid):
			writeJSON(w, http.StatusBadRequest, tipResponse{Error: invalid.Message})
		case errors.Is(err, tips.ErrStorage):
			logging.WithContext(r.Context()).Error().Err(err).Msg("store event tip failed")
			writeJSON(w, http.StatusInternalServerError, tipResponse{Error: MsgTipNotStored})
		default:
			logging.WithContext(r.Context()).Error().Err(err).Msg("submit event tip failed")
			writeJSON(w, http.StatusInternalServerError, tipResponse{Error: middleware.UnexpectedErrorMessage})
		}
		return
	}

	writeJSON(w, http.StatusOK, tipResponse{Success: true, TipID: id})
}
