package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) parseRange(ctx echo.Context) (dto.ReportRange, error) {
	var rng dto.ReportRange
	if raw := ctx.QueryParam("start"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return rng, apperrors.ErrBadRequest
		}
		rng.Start = &t
	}
	if raw := ctx.QueryParam("end"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return rng, apperrors.ErrBadRequest
		}
		rng.End = &t
	}
	return rng, nil
}

func (c *ReportController) Overview(ctx echo.Context) error {
	rng, err := c.parseRange(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	report, err := c.reportService.Overview(ctx.Request().Context(), rng)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, report, "Successfully", http.StatusOK)
}

func (c *ReportController) TeamPerformance(ctx echo.Context) error {
	rng, err := c.parseRange(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	report, err := c.reportService.TeamPerformance(ctx.Request().Context(), rng)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, report, "Successfully", http.StatusOK)
}

func (c *ReportController) TechnicianWorkload(ctx echo.Context) error {
	rng, err := c.parseRange(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	report, err := c.reportService.TechnicianWorkload(ctx.Request().Context(), rng)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, report, "Successfully", http.StatusOK)
}

func (c *ReportController) EquipmentInsights(ctx echo.Context) error {
	rng, err := c.parseRange(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	report, err := c.reportService.EquipmentInsights(ctx.Request().Context(), rng)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, report, "Successfully", http.StatusOK)
}

// Export streams all reports as one xlsx workbook.
func (c *ReportController) Export(ctx echo.Context) error {
	rng, err := c.parseRange(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	workbook, err := c.reportService.ExportWorkbook(ctx.Request().Context(), rng)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filename := fmt.Sprintf("maintenance-report-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
