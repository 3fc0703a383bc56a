package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/services"
	"github.com/devenkhatri/billing-monk-sub000/internal/dto"
	"github.com/devenkhatri/billing-monk-sub000/internal/middleware"
)

// activityHandler handles HTTP requests for the activity log. The log is
// append-only and written by the services, so this handler only reads.
type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

func newActivityHandler(as portssvc.ActivitySvcFacade) *activityHandler {
	return &activityHandler{activityService: as}
}

// registerActivityRoutes registers routes related to the activity log.
func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivitySvcFacade) {
	h := newActivityHandler(activityService)

	rg.GET("/activity-logs", h.listActivityLogs)
}

// listActivityLogs godoc
// @Summary Query the activity log
// @Description Returns one page of audit entries, newest first; filters combine conjunctively
// @Tags activity-logs
// @Produce  json
// @Param   type query string false "Filter by activity type"
// @Param   entityType query string false "Filter by entity type"
// @Param   entityID query string false "Filter by entity ID"
// @Param   userID query string false "Filter by acting user ID"
// @Param   search query string false "Substring match over description, entity name and user email"
// @Param   startDate query string false "Earliest timestamp (YYYY-MM-DD)"
// @Param   endDate query string false "Latest timestamp (YYYY-MM-DD, inclusive)"
// @Param   page query int false "Page number (1-based)"
// @Param   limit query int false "Page size (max 100)"
// @Success 200 {object} dto.ListActivityResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /activity-logs [get]
func (h *activityHandler) listActivityLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListActivityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query for ListActivityLogs", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	res, err := h.activityService.Query(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to query activity log")
		return
	}
	c.JSON(http.StatusOK, res)
}
