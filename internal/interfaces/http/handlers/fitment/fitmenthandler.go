package fitment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/fitment/internal/application/fitment/dto"
	"github.com/orris-inc/fitment/internal/application/fitment/usecases"
	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/errors"
	"github.com/orris-inc/fitment/internal/shared/logger"
	"github.com/orris-inc/fitment/internal/shared/utils"
)

// Handler serves the fitment query API. Query endpoints always answer 200 with a table; empty
// results and query failures are message and error tables, not transport errors.
type Handler struct {
	searchUC   searchFitmentUseCase
	coverageUC computeCoverageUseCase
	reportUC   runQualityReportUseCase
	schemaUC   schemaBrowserUseCase
	aliasesUC  lookupAliasesUseCase
	markdown   messageRenderer
	logger     logger.Interface
}

func NewHandler(
	searchUC searchFitmentUseCase,
	coverageUC computeCoverageUseCase,
	reportUC runQualityReportUseCase,
	schemaUC schemaBrowserUseCase,
	aliasesUC lookupAliasesUseCase,
	markdown messageRenderer,
	logger logger.Interface,
) *Handler {
	return &Handler{
		searchUC:   searchUC,
		coverageUC: coverageUC,
		reportUC:   reportUC,
		schemaUC:   schemaUC,
		aliasesUC:  aliasesUC,
		markdown:   markdown,
		logger:     logger,
	}
}

// Search handles POST /api/fitment/search
func (h *Handler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if !h.bind(c, &req) {
		return
	}
	h.respondTable(c, h.searchUC.Execute(c.Request.Context(), req))
}

// Coverage handles POST /api/fitment/coverage
func (h *Handler) Coverage(c *gin.Context) {
	var req dto.CoverageRequest
	if !h.bind(c, &req) {
		return
	}
	h.respondTable(c, h.coverageUC.Execute(c.Request.Context(), req))
}

// QualityReport handles GET /api/quality/:report
func (h *Handler) QualityReport(c *gin.Context) {
	report, err := usecases.ParseReport(c.Param("report"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError(err.Error()))
		return
	}
	h.respondTable(c, h.reportUC.Execute(c.Request.Context(), report))
}

// ListTables handles GET /api/schema/tables
func (h *Handler) ListTables(c *gin.Context) {
	tables, err := h.schemaUC.ListTables(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewQueryError("failed to load tables", err))
		return
	}
	utils.ListSuccessResponse(c, tables, len(tables))
}

// PreviewTable handles GET /api/schema/tables/:name/preview
func (h *Handler) PreviewTable(c *gin.Context) {
	h.respondTable(c, h.schemaUC.Preview(c.Request.Context(), c.Param("name")))
}

// LookupAliases handles POST /api/aliases/lookup
func (h *Handler) LookupAliases(c *gin.Context) {
	var req dto.AliasLookupRequest
	if !h.bind(c, &req) {
		return
	}
	h.respondTable(c, h.aliasesUC.Execute(c.Request.Context(), req.Text))
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warnw("invalid request body", "path", c.FullPath(), "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.logger.Warnw("request validation failed", "path", c.FullPath(), "error", err)
		utils.ErrorResponseWithError(c, err)
		return false
	}
	return true
}

func (h *Handler) respondTable(c *gin.Context, t *fitment.Table) {
	utils.SuccessResponse(c, http.StatusOK, "", h.present(t))
}

// present converts t to its wire form, rendering message and error text as sanitized HTML.
func (h *Handler) present(t *fitment.Table) *dto.TableDTO {
	out := dto.ToTableDTO(t)
	if t == nil || t.Kind == fitment.TableKindData {
		return out
	}
	rendered, err := h.markdown.Render(t.Text())
	if err != nil {
		h.logger.Warnw("failed to render table text", "kind", t.Kind, "error", err)
		return out
	}
	out.HTML = rendered
	return out
}
