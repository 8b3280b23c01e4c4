package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"kalender/internal/delivery/http/helpers"
	"kalender/internal/domain"
)

// CreateEventRequest is the request body for POST /api/events.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	IsAdminOnly bool   `json:"isAdminOnly"`
	CreatedBy   string `json:"createdBy"`
	Notified    bool   `json:"notified"`
}

// Validate implements Validator. Required fields are checked by the service;
// only the date format is checked here.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Date != "" {
		if _, _, err := parseDate(c.Date); err != nil {
			errs = append(errs, "date "+dateFormatMessage)
		}
	}
	return errs
}

func (c CreateEventRequest) toEvent() *domain.Event {
	event := &domain.Event{
		Title:       c.Title,
		Description: c.Description,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Location:    c.Location,
		Category:    c.Category,
		SubCategory: c.SubCategory,
		IsAdminOnly: c.IsAdminOnly,
		CreatedBy:   c.CreatedBy,
		Notified:    c.Notified,
	}
	if c.Date != "" {
		event.Date, _, _ = parseDate(c.Date)
	}
	return event
}

// UpdateEventRequest is the request body for PUT /api/events/{id}. Omitted fields are unchanged.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
	SubCategory *string `json:"subCategory"`
	IsAdminOnly *bool   `json:"isAdminOnly"`
	CreatedBy   *string `json:"createdBy"`
	Notified    *bool   `json:"notified"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Date != nil {
		if _, _, err := parseDate(*u.Date); err != nil {
			errs = append(errs, "date "+dateFormatMessage)
		}
	}
	return errs
}

func (u UpdateEventRequest) toPatch() domain.EventPatch {
	patch := domain.EventPatch{
		Title:       u.Title,
		Description: u.Description,
		StartTime:   u.StartTime,
		EndTime:     u.EndTime,
		Location:    u.Location,
		Category:    u.Category,
		SubCategory: u.SubCategory,
		IsAdminOnly: u.IsAdminOnly,
		CreatedBy:   u.CreatedBy,
		Notified:    u.Notified,
	}
	if u.Date != nil {
		d, _, _ := parseDate(*u.Date)
		patch.Date = &d
	}
	return patch
}

// EventSuccessResponse is the success response envelope for a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for event lists.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MessageSuccessResponse is the success response envelope for confirmations.
type MessageSuccessResponse struct {
	Data  helpers.MessageResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List public events
// @Description Returns events that are not admin-only, ordered by date ascending. startDate and endDate are inclusive and may be given alone; a date-only endDate covers the whole day.
// @Tags events
// @Produce json
// @Param startDate query string false "Lower bound (YYYY-MM-DD or RFC 3339)"
// @Param endDate query string false "Upper bound (YYYY-MM-DD or RFC 3339)"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	c.listEvents(w, r, false)
}

// ListAdminEvents godoc
// @Summary List all events
// @Description Same as GET /events but includes admin-only events.
// @Tags events
// @Produce json
// @Param startDate query string false "Lower bound (YYYY-MM-DD or RFC 3339)"
// @Param endDate query string false "Upper bound (YYYY-MM-DD or RFC 3339)"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/admin [get]
func (c *EventController) ListAdminEvents(w http.ResponseWriter, r *http.Request) {
	c.listEvents(w, r, true)
}

func (c *EventController) listEvents(w http.ResponseWriter, r *http.Request, includeAdminOnly bool) {
	filter, err := parseEventFilter(r, includeAdminOnly)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	events, err := c.Service.ListEvents(r.Context(), filter)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create an event
// @Description title, date, category and createdBy are required. startTime, endTime and location default to 19:00, 21:00 and Freiburg Moschee.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toEvent()
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Merges the supplied fields into the event and re-validates it.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), r.PathValue("id"), req.toPatch())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event and all participation recorded for it.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.MessageSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.MessageResponse{Message: "event deleted"})
}

// HealthResponse is the data payload of GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains status, message and timestamp"
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Message:   "kalender api is running",
		Timestamp: time.Now().UTC(),
	})
}

// NotFound answers requests that match no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "route not found")
}
