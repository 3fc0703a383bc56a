package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/services"
	"github.com/devenkhatri/billing-monk-sub000/internal/dto"
	"github.com/devenkhatri/billing-monk-sub000/internal/middleware"
)

// timeEntryHandler handles HTTP requests related to time entries.
type timeEntryHandler struct {
	timeEntryService portssvc.TimeEntrySvcFacade
}

func newTimeEntryHandler(ts portssvc.TimeEntrySvcFacade) *timeEntryHandler {
	return &timeEntryHandler{timeEntryService: ts}
}

// registerTimeEntryRoutes registers routes related to time entries.
func registerTimeEntryRoutes(rg *gin.RouterGroup, timeEntryService portssvc.TimeEntrySvcFacade) {
	h := newTimeEntryHandler(timeEntryService)

	entries := rg.Group("/time-entries")
	{
		entries.POST("", h.createTimeEntry)
		entries.GET("", h.listTimeEntries)
		entries.GET("/:id", h.getTimeEntryByID)
		entries.PUT("/:id", h.updateTimeEntry)
		entries.DELETE("/:id", h.deleteTimeEntry)
	}
}

// createTimeEntry godoc
// @Summary Record time against a task
// @Description Records the entry and recomputes the task's actual and billable hours
// @Tags time-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateTimeEntryRequest true "Time entry details"
// @Success 201 {object} dto.TimeEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /time-entries [post]
func (h *timeEntryHandler) createTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTimeEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	entry, err := h.timeEntryService.CreateTimeEntry(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record time entry")
		return
	}

	logger.Info("Time entry recorded successfully",
		slog.String("entry_id", entry.ID),
		slog.String("task_id", entry.TaskID))
	c.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry))
}

// listTimeEntries godoc
// @Summary List time entries
// @Tags time-entries
// @Produce  json
// @Param   taskID query string false "Filter by task ID"
// @Param   projectID query string false "Filter by project ID"
// @Success 200 {object} dto.ListTimeEntriesResponse
// @Router /time-entries [get]
func (h *timeEntryHandler) listTimeEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTimeEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query for ListTimeEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.timeEntryService.ListTimeEntries(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list time entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTimeEntriesResponse(entries))
}

// getTimeEntryByID godoc
// @Summary Get a time entry by ID
// @Tags time-entries
// @Produce  json
// @Param   id path string true "Time entry ID"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 404 {object} map[string]string "Time entry not found"
// @Router /time-entries/{id} [get]
func (h *timeEntryHandler) getTimeEntryByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entry, err := h.timeEntryService.GetTimeEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve time entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// updateTimeEntry godoc
// @Summary Update a time entry
// @Description Patches the entry and recomputes the task's hour totals
// @Tags time-entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Time entry ID"
// @Param   entry body dto.UpdateTimeEntryRequest true "Fields to update"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 404 {object} map[string]string "Time entry not found"
// @Router /time-entries/{id} [put]
func (h *timeEntryHandler) updateTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTimeEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := middleware.GetActorFromContext(c)
	entry, err := h.timeEntryService.UpdateTimeEntry(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update time entry")
		return
	}

	logger.Info("Time entry updated successfully", slog.String("entry_id", entry.ID))
	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// deleteTimeEntry godoc
// @Summary Delete a time entry
// @Description Deletes the entry and recomputes the task's hour totals
// @Tags time-entries
// @Produce  json
// @Param   id path string true "Time entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Time entry not found"
// @Router /time-entries/{id} [delete]
func (h *timeEntryHandler) deleteTimeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor := middleware.GetActorFromContext(c)
	if err := h.timeEntryService.DeleteTimeEntry(c.Request.Context(), c.Param("id"), actor); err != nil {
		respondServiceError(c, logger, err, "Failed to delete time entry")
		return
	}

	logger.Info("Time entry deleted successfully", slog.String("entry_id", c.Param("id")))
	c.Status(http.StatusNoContent)
}
