package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"ivarberg/internal/logging"
	"ivarberg/internal/models"
	"ivarberg/internal/newsletter"
	"ivarberg/internal/organizers"
	"ivarberg/internal/seo"
)

type newsletterRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type organizersResponse struct {
	Pages []models.OrganizerPage `json:"pages"`
}

func (s *Server) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: newsletter.MsgInvalidEmail})
		return
	}

	if err := s.newsletter.Subscribe(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, newsletter.ErrInvalidEmail):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: newsletter.MsgInvalidEmail})
		case errors.Is(err, newsletter.ErrAlreadySubscribed):
			writeJSON(w, http.StatusConflict, errorResponse{Error: newsletter.MsgAlreadySubscribed})
		default:
			logging.WithContext(r.Context()).Error().Err(err).Msg("newsletter subscribe failed")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not subscribe"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: newsletter.MsgSubscribed})
}

func (s *Server) handleOrganizers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, organizersResponse{Pages: s.organizers.List(r.Context())})
}

func (s *Server) handleOrganizer(w http.ResponseWriter, r *http.Request) {
	view, err := s.organizers.Page(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		if errors.Is(err, organizers.ErrPageNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "organizer page not found"})
			return
		}
		logging.WithContext(r.Context()).Error().Err(err).Msg("load organizer page failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load organizer page"})
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	switch mux.Vars(r)["kind"] {
	case "local-business":
		writeLD(w, seo.LocalBusinessSchema(s.site))
	case "faq":
		writeLD(w, seo.FAQSchema(s.site))
	case "events":
		writeLD(w, seo.ItemListSchema(s.site, s.events.Featured(r.Context())))
	default:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown schema"})
	}
}
