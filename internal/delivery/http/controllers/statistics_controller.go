package controllers

import (
	"log/slog"
	"net/http"

	"kalender/internal/delivery/http/helpers"
	"kalender/internal/domain"
)

// StatisticsSuccessResponse is the success response envelope for one event's statistics.
type StatisticsSuccessResponse struct {
	Data  *domain.EventStatistics `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// StatisticsListSuccessResponse is the success response envelope for GET /api/statistics.
type StatisticsListSuccessResponse struct {
	Data  []*domain.EventStatistics `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type StatisticsController struct {
	Logger  *slog.Logger
	Service domain.StatisticsService
}

func NewStatisticsController(logger *slog.Logger, svc domain.StatisticsService) *StatisticsController {
	return &StatisticsController{
		Logger:  logger,
		Service: svc,
	}
}

// GetEventStatistics godoc
// @Summary Participation statistics of one event
// @Description Per-category totals and the grand total over every participation record of the event.
// @Tags statistics
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.StatisticsSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/statistics [get]
func (c *StatisticsController) GetEventStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.ComputeStatistics(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// GetAllStatistics godoc
// @Summary Participation statistics of all events
// @Description One entry per event, admin-only events included, ordered by date ascending.
// @Tags statistics
// @Produce json
// @Success 200 {object} controllers.StatisticsListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /statistics [get]
func (c *StatisticsController) GetAllStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.ComputeAllStatistics(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
