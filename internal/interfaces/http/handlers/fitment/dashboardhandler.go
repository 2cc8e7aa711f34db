package fitment

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/fitment/internal/application/fitment/usecases"
	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/logger"
	"github.com/orris-inc/fitment/internal/shared/utils"
)

//go:embed assets
var assets embed.FS

var dashboardTemplate = template.Must(template.ParseFS(assets, "assets/dashboard.html.tmpl"))

// DashboardHandler renders the single page explorer. Result tables are fetched from the JSON API
// by assets/dashboard.js.
type DashboardHandler struct {
	lookupsUC lookupsUseCase
	statsUC   quickStatsUseCase
	schemaUC  schemaBrowserUseCase
	logger    logger.Interface
}

func NewDashboardHandler(
	lookupsUC lookupsUseCase,
	statsUC quickStatsUseCase,
	schemaUC schemaBrowserUseCase,
	logger logger.Interface,
) *DashboardHandler {
	return &DashboardHandler{
		lookupsUC: lookupsUC,
		statsUC:   statsUC,
		schemaUC:  schemaUC,
		logger:    logger,
	}
}

type dashboardPage struct {
	Stats     fitment.Stats
	Makes     []fitment.Option
	PartTypes []fitment.Option
	Positions []fitment.Option
	Drives    []fitment.Option
	Brands    []fitment.Option
	Reports   []usecases.Report
	Tables    []string
}

// Dashboard handles GET /
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	tables, err := h.schemaUC.ListTables(ctx)
	if err != nil {
		h.logger.Warnw("rendering dashboard without schema tables", "error", err)
	}

	page := dashboardPage{
		Stats:     h.statsUC.Execute(ctx),
		Makes:     h.lookupsUC.Makes(ctx),
		PartTypes: h.lookupsUC.PartTypes(ctx),
		Positions: h.lookupsUC.Positions(ctx),
		Drives:    h.lookupsUC.Drives(ctx),
		Brands:    h.lookupsUC.Brands(ctx),
		Reports:   usecases.Reports,
		Tables:    tables,
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		h.logger.Errorw("failed to render dashboard", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to render dashboard")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// StaticFS serves the dashboard's script and stylesheet.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
