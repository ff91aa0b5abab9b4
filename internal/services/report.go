package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
)

type ReportServiceInterface interface {
	Overview(ctx context.Context, rng dto.ReportRange) (*dto.OverviewDTO, error)
	TeamPerformance(ctx context.Context, rng dto.ReportRange) ([]dto.TeamPerformanceDTO, error)
	TechnicianWorkload(ctx context.Context, rng dto.ReportRange) ([]dto.TechnicianWorkloadDTO, error)
	EquipmentInsights(ctx context.Context, rng dto.ReportRange) (*dto.EquipmentInsightsDTO, error)
	ExportWorkbook(ctx context.Context, rng dto.ReportRange) (*excelize.File, error)
}

type ReportService struct {
	requestRepo   repositories.RequestRepositoryInterface
	teamRepo      repositories.TeamRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	categoryRepo  repositories.CategoryRepositoryInterface
	logger        *zap.Logger
}

func NewReportService(
	requestRepo repositories.RequestRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		requestRepo:   requestRepo,
		teamRepo:      teamRepo,
		userRepo:      userRepo,
		equipmentRepo: equipmentRepo,
		categoryRepo:  categoryRepo,
		logger:        logger,
	}
}

func (s *ReportService) authorize(ctx context.Context) error {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return err
	}
	return requireCapability(actor, authz.ViewReports)
}

func (s *ReportService) Overview(ctx context.Context, rng dto.ReportRange) (*dto.OverviewDTO, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.ListAll(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}
	return buildOverview(requests, rng, time.Now()), nil
}

func (s *ReportService) TeamPerformance(ctx context.Context, rng dto.ReportRange) ([]dto.TeamPerformanceDTO, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.ListAll(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildTeamPerformance(requests, teams, rng), nil
}

func (s *ReportService) TechnicianWorkload(ctx context.Context, rng dto.ReportRange) ([]dto.TechnicianWorkloadDTO, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.ListAll(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}
	technicians, err := s.userRepo.ListByRole(ctx, constants.RoleTechnician)
	if err != nil {
		return nil, err
	}
	return buildTechnicianWorkload(requests, technicians, rng), nil
}

func (s *ReportService) EquipmentInsights(ctx context.Context, rng dto.ReportRange) (*dto.EquipmentInsightsDTO, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.ListAll(ctx, repositories.RequestFilter{})
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.ListAll(ctx, repositories.EquipmentFilter{})
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildEquipmentInsights(requests, equipment, categories, rng), nil
}

// ExportWorkbook renders all four reports into one spreadsheet, a sheet per
// report.
func (s *ReportService) ExportWorkbook(ctx context.Context, rng dto.ReportRange) (*excelize.File, error) {
	overview, err := s.Overview(ctx, rng)
	if err != nil {
		return nil, err
	}
	teams, err := s.TeamPerformance(ctx, rng)
	if err != nil {
		return nil, err
	}
	technicians, err := s.TechnicianWorkload(ctx, rng)
	if err != nil {
		return nil, err
	}
	insights, err := s.EquipmentInsights(ctx, rng)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	const overviewSheet = "Overview"
	f.SetSheetName(f.GetSheetName(0), overviewSheet)
	overviewRows := [][]interface{}{
		{"Metric", "Value"},
		{"Total requests", overview.Total},
		{"Open", overview.Open},
		{"Closed", overview.Closed},
		{"Overdue", overview.Overdue},
		{"Corrective", overview.Corrective},
		{"Preventive", overview.Preventive},
		{"Corrective %", overview.CorrectivePercentage},
		{"Preventive %", overview.PreventivePercentage},
	}
	if err := writeSheet(f, overviewSheet, overviewRows); err != nil {
		return nil, err
	}

	teamRows := [][]interface{}{{"Team", "Total", "Completed", "Open", "Avg resolution (h)"}}
	for _, t := range teams {
		teamRows = append(teamRows, []interface{}{t.TeamName, t.TotalRequests, t.Completed, t.Open, t.AvgResolutionTimeHours})
	}
	if err := addSheet(f, "Teams", teamRows); err != nil {
		return nil, err
	}

	techRows := [][]interface{}{{"Technician", "Assigned", "Completed", "In progress", "Avg repair (h)"}}
	for _, t := range technicians {
		techRows = append(techRows, []interface{}{t.TechnicianName, t.TotalAssigned, t.Completed, t.InProgress, t.AvgRepairTimeHours})
	}
	if err := addSheet(f, "Technicians", techRows); err != nil {
		return nil, err
	}

	equipmentRows := [][]interface{}{{"Equipment", "Category", "Department", "Requests", "Scrap requests", "Scrapped"}}
	for _, e := range insights.EquipmentStats {
		equipmentRows = append(equipmentRows, []interface{}{e.EquipmentName, e.Category, e.Department, e.TotalRequests, e.ScrappedCount, e.IsScrapped})
	}
	if err := addSheet(f, "Equipment", equipmentRows); err != nil {
		return nil, err
	}

	return f, nil
}

func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeSheet(f, name, rows)
}

func writeSheet(f *excelize.File, name string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write sheet %s: %w", name, err)
		}
	}
	return nil
}
