package handler

import (
	"net/http"
	"time"

	"admin-service/internal/purge"
	"admin-service/pkg/config"
	"admin-service/pkg/database"
	"admin-service/pkg/logger"
	"admin-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var purgeCfg config.PurgeConfig

// InitPurge stores the reclamation configuration for the admin handlers
func InitPurge(cfg *config.Config) {
	purgeCfg = cfg.Purge
}

// ReclaimTenantData runs the tenant data reclamation engine. The route is
// gated by RequireSuperAdmin, so only privileged callers reach this handler.
// A run that completed with per-table failures still returns 200 with
// hasErrors set; only a run that never started returns 500.
func ReclaimTenantData(c echo.Context) error {
	log := logger.FromContext(c)
	start := time.Now()

	engine := purge.New(database.GetDB(), purgeCfg, log)
	report, err := engine.Run(c.Request().Context())
	if err != nil {
		log.Error("Tenant data reclamation aborted before any deletion", zap.Error(err))
		prometheus.RecordPurgeRun("failed", time.Since(start))
		return c.JSON(http.StatusInternalServerError, purge.FailedReport(err))
	}

	for table, outcome := range report.Results {
		prometheus.RecordPurgeStep(table, outcome.Deleted, outcome.Error != "")
	}

	result := "success"
	if report.Summary.HasErrors {
		result = "partial"
	}
	prometheus.RecordPurgeRun(result, time.Since(start))

	log.Info("Tenant data reclamation completed",
		zap.Int64("total_deleted", report.Summary.TotalRecordsDeleted),
		zap.Int("tables_processed", report.Summary.TablesProcessed),
		zap.Bool("has_errors", report.Summary.HasErrors),
		zap.Duration("duration", time.Since(start)))

	return c.JSON(http.StatusOK, report)
}

// PreviewReclaim reports what a reclamation run would delete without issuing
// any delete statements
func PreviewReclaim(c echo.Context) error {
	log := logger.FromContext(c)

	engine := purge.New(database.GetDB(), purgeCfg, log)
	report, err := engine.Preview(c.Request().Context())
	if err != nil {
		log.Error("Reclamation preview aborted", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, purge.FailedReport(err))
	}

	return c.JSON(http.StatusOK, report)
}
