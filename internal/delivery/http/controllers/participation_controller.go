package controllers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"kalender/internal/delivery/http/helpers"
	"kalender/internal/domain"
)

// lenientCount accepts a JSON number or a numeric string. Values that do not
// start with an integer decode as 0, which the service treats as "one person".
type lenientCount int

func (n *lenientCount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		*n = lenientCount(math.Trunc(f))
		return nil
	}
	*n = lenientCount(leadingInt(s))
	return nil
}

// leadingInt parses the optional sign and digits at the start of s.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}

// ParticipateRequest is the request body for POST /api/events/{id}/participate.
// Either participantName, participantCategory and participantCount describe a
// single category, or categoryCounts and the per-category fields describe a
// breakdown.
type ParticipateRequest struct {
	EventID             string         `json:"eventId"`
	UserID              string         `json:"userId"`
	ParticipantName     string         `json:"participantName"`
	ParticipantCategory string         `json:"participantCategory"`
	ParticipantCount    lenientCount   `json:"participantCount" swaggertype:"integer"`
	CategoryCounts      map[string]int `json:"categoryCounts"`
	KhuddamCount        int            `json:"khuddamCount"`
	AnsarCount          int            `json:"ansarCount"`
	AtfalCount          int            `json:"atfalCount"`
	LajnaCount          int            `json:"lajnaCount"`
	NasiratCount        int            `json:"nasiratCount"`
	KinderCount         int            `json:"kinderCount"`
	TotalCount          int            `json:"totalCount"`
}

func (p ParticipateRequest) toParticipation(eventID string) *domain.Participation {
	part := &domain.Participation{
		EventID:             eventID,
		UserID:              p.UserID,
		ParticipantName:     p.ParticipantName,
		ParticipantCategory: p.ParticipantCategory,
		ParticipantCount:    int(p.ParticipantCount),
		TotalCount:          p.TotalCount,
	}
	breakdown := domain.CategoryCounts{}
	for label, n := range p.CategoryCounts {
		breakdown[label] += n
	}
	for label, n := range map[string]int{
		domain.CategoryKhuddam: p.KhuddamCount,
		domain.CategoryAnsar:   p.AnsarCount,
		domain.CategoryAtfal:   p.AtfalCount,
		domain.CategoryLajna:   p.LajnaCount,
		domain.CategoryNasirat: p.NasiratCount,
		domain.CategoryKinder:  p.KinderCount,
	} {
		if n != 0 {
			breakdown[label] += n
		}
	}
	if len(breakdown) > 0 {
		part.Breakdown = breakdown
	}
	return part
}

// ParticipateResponse is the data payload of a recorded participation.
type ParticipateResponse struct {
	Message       string                `json:"message"`
	Participation *domain.Participation `json:"participation"`
}

// ParticipateSuccessResponse is the success response envelope for POST /api/events/{id}/participate (201).
type ParticipateSuccessResponse struct {
	Data  ParticipateResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ParticipantListSuccessResponse is the success response envelope for participant lists.
type ParticipantListSuccessResponse struct {
	Data  []*domain.Participation `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type ParticipationController struct {
	Logger  *slog.Logger
	Service domain.ParticipationService
}

func NewParticipationController(logger *slog.Logger, svc domain.ParticipationService) *ParticipationController {
	return &ParticipationController{
		Logger:  logger,
		Service: svc,
	}
}

// Participate godoc
// @Summary Record participation
// @Description Records a headcount for the event. A user may submit once per event unless resubmission is enabled.
// @Tags participation
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param body body ParticipateRequest true "Participation"
// @Success 201 {object} controllers.ParticipateSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or duplicate_participation"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/participate [post]
func (c *ParticipationController) Participate(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	var req ParticipateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if req.EventID != "" && req.EventID != eventID {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventId does not match the event in the path")
		return
	}
	part := req.toParticipation(eventID)
	if err := c.Service.RecordParticipation(r.Context(), part); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, ParticipateResponse{
		Message:       "participation recorded",
		Participation: part,
	})
}

// ListParticipants godoc
// @Summary List participation records of an event
// @Description Returns records in the order they were submitted. Unknown events yield an empty list.
// @Tags participation
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.ParticipantListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/participants [get]
func (c *ParticipationController) ListParticipants(w http.ResponseWriter, r *http.Request) {
	parts, err := c.Service.ListParticipants(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, parts)
}
