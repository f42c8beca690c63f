package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"devevents/internal/delivery/http/helpers"
	"devevents/internal/domain"
)

// DevEventController serves the /api/dev-events routes.
type DevEventController struct {
	Logger  *slog.Logger
	Service domain.DevEventService
}

func NewDevEventController(logger *slog.Logger, svc domain.DevEventService) *DevEventController {
	return &DevEventController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List dev events
// @Description Returns every event that is not deleted, each with its speakers.
// @Tags dev-events
// @Produce json
// @Success 200 {array} controllers.EventView
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events [get]
func (c *DevEventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ToEventViews(events))
}

// GetByID godoc
// @Summary Get a dev event
// @Description Returns the event with its speakers. Deleted events are still returned, with isDeleted set.
// @Tags dev-events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventView
// @Failure 404 "event not found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events/{id} [get]
func (c *DevEventController) GetByID(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ToEventView(event))
}

// Create godoc
// @Summary Create a dev event
// @Description Creates an event with no speakers. The Location header points at the new event.
// @Tags dev-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body controllers.EventInput true "Event data"
// @Success 201 {object} controllers.EventView
// @Header 201 {string} Location "/api/dev-events/{id}"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events [post]
func (c *DevEventController) Create(w http.ResponseWriter, r *http.Request) {
	var in EventInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), in.Details())
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/dev-events/"+event.ID)
	helpers.WriteJSON(w, http.StatusCreated, ToEventView(event))
}

// Update godoc
// @Summary Update a dev event
// @Description Replaces title, description and dates. Speakers and the deletion flag are unchanged.
// @Tags dev-events
// @Accept json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param event body controllers.EventInput true "Event data"
// @Success 204
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 "event not found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events/{id} [put]
func (c *DevEventController) Update(w http.ResponseWriter, r *http.Request) {
	var in EventInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	if err := c.Service.UpdateEvent(r.Context(), r.PathValue("id"), in.Details()); err != nil {
		c.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a dev event
// @Description Soft-deletes the event. Deleting an already deleted event succeeds again.
// @Tags dev-events
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 204
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 "event not found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events/{id} [delete]
func (c *DevEventController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		c.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddSpeaker godoc
// @Summary Add a speaker to a dev event
// @Description Attaches a speaker to the event in the path. Any devEventId in the body is ignored.
// @Tags speakers
// @Accept json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param speaker body controllers.SpeakerInput true "Speaker data"
// @Success 204
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 "event not found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events/{id}/speakers [post]
func (c *DevEventController) AddSpeaker(w http.ResponseWriter, r *http.Request) {
	var in SpeakerInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	if _, err := c.Service.AddSpeaker(r.Context(), r.PathValue("id"), in.Details()); err != nil {
		c.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSpeakers godoc
// @Summary List the speakers of a dev event
// @Tags speakers
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {array} controllers.SpeakerView
// @Failure 404 "event not found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dev-events/{id}/speakers [get]
func (c *DevEventController) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	speakers, err := c.Service.ListSpeakers(r.Context(), r.PathValue("id"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ToSpeakerViews(speakers))
}

// writeError maps service errors to responses. Not found has no body.
func (c *DevEventController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteNotFound(w)
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}
