package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/devenkhatri/billing-monk-sub000/internal/core/ports/services"
	"github.com/devenkhatri/billing-monk-sub000/internal/dto"
	"github.com/devenkhatri/billing-monk-sub000/internal/middleware"
)

// recurringHandler handles HTTP requests for the recurring invoice engine.
// The background scheduler drives the same service; these endpoints exist so
// the frontend can inspect due schedules and force a run.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

func newRecurringHandler(rs portssvc.RecurringSvcFacade) *recurringHandler {
	return &recurringHandler{recurringService: rs}
}

// registerRecurringRoutes registers routes related to recurring invoices.
func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := newRecurringHandler(recurringService)

	recurring := rg.Group("/recurring")
	{
		recurring.GET("/due", h.listDueInvoices)
		recurring.POST("/generate", h.generateDueInvoices)
	}
}

// listDueInvoices godoc
// @Summary List recurring invoices whose schedule has fired
// @Tags recurring
// @Produce  json
// @Success 200 {object} dto.ListInvoicesResponse
// @Router /recurring/due [get]
func (h *recurringHandler) listDueInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	due, err := h.recurringService.ListDueInvoices(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list due recurring invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(due))
}

// generateDueInvoices godoc
// @Summary Generate invoices for every due recurring schedule
// @Description Runs the generation pass immediately instead of waiting for the scheduler
// @Tags recurring
// @Produce  json
// @Success 200 {object} dto.GenerateRecurringResponse
// @Router /recurring/generate [post]
func (h *recurringHandler) generateDueInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor := middleware.GetActorFromContext(c)

	generated, err := h.recurringService.GenerateDueInvoices(c.Request.Context(), time.Now().UTC(), actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate recurring invoices")
		return
	}

	res := dto.GenerateRecurringResponse{Count: len(generated)}
	res.Generated = make([]dto.InvoiceResponse, len(generated))
	for i := range generated {
		res.Generated[i] = dto.ToInvoiceResponse(&generated[i])
	}
	c.JSON(http.StatusOK, res)
}
