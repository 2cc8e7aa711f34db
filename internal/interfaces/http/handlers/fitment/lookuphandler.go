package fitment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/logger"
	"github.com/orris-inc/fitment/internal/shared/utils"
)

// LookupHandler serves the dropdown option lists and the header counters.
type LookupHandler struct {
	lookupsUC lookupsUseCase
	statsUC   quickStatsUseCase
	logger    logger.Interface
}

func NewLookupHandler(lookupsUC lookupsUseCase, statsUC quickStatsUseCase, logger logger.Interface) *LookupHandler {
	return &LookupHandler{
		lookupsUC: lookupsUC,
		statsUC:   statsUC,
		logger:    logger,
	}
}

// QuickStats handles GET /api/stats
func (h *LookupHandler) QuickStats(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.statsUC.Execute(c.Request.Context()))
}

// Makes handles GET /api/lookups/makes
func (h *LookupHandler) Makes(c *gin.Context) {
	respondOptions(c, h.lookupsUC.Makes(c.Request.Context()))
}

// Models handles GET /api/lookups/models?make_id=
func (h *LookupHandler) Models(c *gin.Context) {
	respondOptions(c, h.lookupsUC.Models(c.Request.Context(), c.Query("make_id")))
}

// Years handles GET /api/lookups/years?model_id=
func (h *LookupHandler) Years(c *gin.Context) {
	years := h.lookupsUC.Years(c.Request.Context(), c.Query("model_id"))
	if years == nil {
		years = []int{}
	}
	utils.ListSuccessResponse(c, years, len(years))
}

// Trims handles GET /api/lookups/trims?model_id=&year=
func (h *LookupHandler) Trims(c *gin.Context) {
	respondOptions(c, h.lookupsUC.Trims(c.Request.Context(), c.Query("model_id"), c.Query("year")))
}

// PartTypes handles GET /api/lookups/part-types
func (h *LookupHandler) PartTypes(c *gin.Context) {
	respondOptions(c, h.lookupsUC.PartTypes(c.Request.Context()))
}

// Positions handles GET /api/lookups/positions
func (h *LookupHandler) Positions(c *gin.Context) {
	respondOptions(c, h.lookupsUC.Positions(c.Request.Context()))
}

// Drives handles GET /api/lookups/drives
func (h *LookupHandler) Drives(c *gin.Context) {
	respondOptions(c, h.lookupsUC.Drives(c.Request.Context()))
}

// Brands handles GET /api/lookups/brands
func (h *LookupHandler) Brands(c *gin.Context) {
	respondOptions(c, h.lookupsUC.Brands(c.Request.Context()))
}

func respondOptions(c *gin.Context, options []fitment.Option) {
	if options == nil {
		options = []fitment.Option{}
	}
	utils.ListSuccessResponse(c, options, len(options))
}
