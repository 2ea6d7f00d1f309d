package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yhkang/stylehub-backend/internal/app/service"
	errs "github.com/yhkang/stylehub-backend/internal/errors"
	"github.com/yhkang/stylehub-backend/internal/middleware"
)

type ExportController struct {
	exportService service.ExportService
}

func NewExportController(exportService service.ExportService) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// ExportVariants streams the variant catalog as an XLSX workbook
// GET /api/v1/variants/export
func (ctrl *ExportController) ExportVariants(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	f, err := ctrl.exportService.ExportVariants()
	if err != nil {
		log.Error("Failed to build variant export", err, nil)
		errs.InternalError(c, "")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("variants-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to write variant export", err, nil)
	}
}
