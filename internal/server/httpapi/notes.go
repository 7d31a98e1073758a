package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/opennote-dev/opennote/internal/common"
	"github.com/opennote-dev/opennote/internal/server/models"
)

type noteBody struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

func noteToBody(note *models.Note) noteBody {
	return noteBody{ID: note.ID, Name: note.Name, Content: note.Content}
}

func writeNoteNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Note not found"})
}

func (s *Server) listNotesHandler(w http.ResponseWriter, r *http.Request) {
	all, err := s.notes.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "list notes failed", "error", err.Error())
		internalError(w)
		return
	}

	result := make([]noteBody, 0, len(all))
	for _, note := range all {
		result = append(result, noteToBody(note))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) createNoteHandler(w http.ResponseWriter, r *http.Request) {
	var body noteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorCode(w, http.StatusBadRequest, codeValidationError)
		return
	}

	note, err := s.notes.Create(r.Context(), &models.Note{Name: body.Name, Content: body.Content})
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, noteToBody(note))
	case errors.Is(err, common.ErrValidation):
		writeErrorCode(w, http.StatusBadRequest, codeValidationError)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeErrorCode(w, http.StatusBadRequest, codeWriteError)
	default:
		s.logger.Error(r.Context(), "create note failed", "error", err.Error())
		internalError(w)
	}
}

func (s *Server) getNoteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	note, err := s.notes.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeNoteNotFound(w)
			return
		}
		s.logger.Error(r.Context(), "get note failed", "error", err.Error())
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, noteToBody(note))
}

func (s *Server) updateNoteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body noteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorCode(w, http.StatusBadRequest, codeValidationError)
		return
	}
	if body.ID != "" && body.ID != id {
		writeErrorCode(w, http.StatusBadRequest, codeValidationError)
		return
	}

	note, err := s.notes.Update(r.Context(), &models.Note{ID: id, Name: body.Name, Content: body.Content})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, noteToBody(note))
	case errors.Is(err, common.ErrorNotFound):
		writeNoteNotFound(w)
	case errors.Is(err, common.ErrValidation):
		writeErrorCode(w, http.StatusBadRequest, codeValidationError)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeErrorCode(w, http.StatusBadRequest, codeWriteError)
	default:
		s.logger.Error(r.Context(), "update note failed", "error", err.Error())
		internalError(w)
	}
}

func (s *Server) deleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.notes.Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeNoteNotFound(w)
			return
		}
		s.logger.Error(r.Context(), "delete note failed", "error", err.Error())
		internalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
