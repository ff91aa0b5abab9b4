package services

import (
	"math"
	"sort"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
)

// overdueAfter is how long an open request may sit before it counts as
// overdue.
const overdueAfter = 7 * 24 * time.Hour

func isCompleted(status string) bool {
	return status == constants.StatusRepaired || status == constants.StatusScrap
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// avgHours returns the mean duration in whole hours, 0 when count is 0.
func avgHours(total time.Duration, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(total.Hours() / float64(count)))
}

func inRange(rng dto.ReportRange, requests []entities.MaintenanceRequest) []entities.MaintenanceRequest {
	filtered := make([]entities.MaintenanceRequest, 0, len(requests))
	for _, r := range requests {
		if rng.Contains(r.CreatedAt) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func buildOverview(requests []entities.MaintenanceRequest, rng dto.ReportRange, now time.Time) *dto.OverviewDTO {
	out := &dto.OverviewDTO{}
	for _, r := range inRange(rng, requests) {
		out.Total++
		if constants.IsOpenStatus(r.Status) {
			out.Open++
			if now.Sub(r.CreatedAt) > overdueAfter {
				out.Overdue++
			}
		} else {
			out.Closed++
		}
		switch r.Type {
		case constants.TypeCorrective:
			out.Corrective++
		case constants.TypePreventive:
			out.Preventive++
		}
	}
	out.CorrectivePercentage = percentage(out.Corrective, out.Total)
	out.PreventivePercentage = percentage(out.Preventive, out.Total)
	return out
}

func buildTeamPerformance(requests []entities.MaintenanceRequest, teams []entities.Team, rng dto.ReportRange) []dto.TeamPerformanceDTO {
	type teamAcc struct {
		dto.TeamPerformanceDTO
		resolutionTotal time.Duration
	}

	byTeam := make(map[uint64]*teamAcc, len(teams))
	for _, t := range teams {
		byTeam[t.ID] = &teamAcc{TeamPerformanceDTO: dto.TeamPerformanceDTO{TeamID: t.ID, TeamName: t.Name}}
	}

	for _, r := range inRange(rng, requests) {
		acc, ok := byTeam[r.TeamID]
		if !ok {
			continue
		}
		acc.TotalRequests++
		switch {
		case isCompleted(r.Status):
			acc.Completed++
			acc.resolutionTotal += r.UpdatedAt.Sub(r.CreatedAt)
		case constants.IsOpenStatus(r.Status):
			acc.Open++
		}
	}

	out := make([]dto.TeamPerformanceDTO, 0, len(byTeam))
	for _, acc := range byTeam {
		acc.AvgResolutionTimeHours = avgHours(acc.resolutionTotal, acc.Completed)
		out = append(out, acc.TeamPerformanceDTO)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalRequests != out[j].TotalRequests {
			return out[i].TotalRequests > out[j].TotalRequests
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}

func buildTechnicianWorkload(requests []entities.MaintenanceRequest, technicians []entities.User, rng dto.ReportRange) []dto.TechnicianWorkloadDTO {
	type techAcc struct {
		dto.TechnicianWorkloadDTO
		repairTotal time.Duration
	}

	byTech := make(map[uint64]*techAcc, len(technicians))
	for _, t := range technicians {
		acc := &techAcc{TechnicianWorkloadDTO: dto.TechnicianWorkloadDTO{
			TechnicianID:   t.ID,
			TechnicianName: t.Name,
		}}
		if t.TeamID.Valid {
			teamID := t.TeamID.Uint64
			acc.TeamID = &teamID
		}
		byTech[t.ID] = acc
	}

	for _, r := range inRange(rng, requests) {
		if !r.AssignedTo.Valid {
			continue
		}
		acc, ok := byTech[r.AssignedTo.Uint64]
		if !ok {
			continue
		}
		acc.TotalAssigned++
		switch {
		case isCompleted(r.Status):
			acc.Completed++
			acc.repairTotal += r.UpdatedAt.Sub(r.CreatedAt)
		case r.Status == constants.StatusInProgress:
			acc.InProgress++
			acc.CurrentlyAssigned++
		default:
			acc.CurrentlyAssigned++
		}
	}

	out := make([]dto.TechnicianWorkloadDTO, 0, len(byTech))
	for _, acc := range byTech {
		acc.AvgRepairTimeHours = avgHours(acc.repairTotal, acc.Completed)
		out = append(out, acc.TechnicianWorkloadDTO)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalAssigned != out[j].TotalAssigned {
			return out[i].TotalAssigned > out[j].TotalAssigned
		}
		return out[i].TechnicianID < out[j].TechnicianID
	})
	return out
}

func buildEquipmentInsights(
	requests []entities.MaintenanceRequest,
	equipment []entities.Equipment,
	categories []entities.EquipmentCategory,
	rng dto.ReportRange,
) *dto.EquipmentInsightsDTO {
	categoryNames := make(map[uint64]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	byEquipment := make(map[uint64]*dto.EquipmentStatDTO, len(equipment))
	breakdown := make(map[string]int)
	out := &dto.EquipmentInsightsDTO{CategoryBreakdown: breakdown}

	for _, e := range equipment {
		category, ok := categoryNames[e.CategoryID]
		if !ok {
			category = "Uncategorized"
		}
		byEquipment[e.ID] = &dto.EquipmentStatDTO{
			EquipmentID:   e.ID,
			EquipmentName: e.Name,
			Category:      category,
			Department:    e.Department,
			IsScrapped:    e.IsScrapped,
		}
		breakdown[category]++
		out.TotalEquipment++
		if e.IsScrapped {
			out.TotalScrapped++
		}
	}

	for _, r := range inRange(rng, requests) {
		stat, ok := byEquipment[r.EquipmentID]
		if !ok {
			continue
		}
		stat.TotalRequests++
		if r.Status == constants.StatusScrap {
			stat.ScrappedCount++
		}
	}

	stats := make([]dto.EquipmentStatDTO, 0, len(byEquipment))
	for _, stat := range byEquipment {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalRequests != stats[j].TotalRequests {
			return stats[i].TotalRequests > stats[j].TotalRequests
		}
		return stats[i].EquipmentID < stats[j].EquipmentID
	})
	out.EquipmentStats = stats
	return out
}
