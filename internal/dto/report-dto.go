package dto

import "time"

// ReportRange is an optional createdAt window applied to every report.
type ReportRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls inside the window. Nil bounds are open.
func (r ReportRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

type OverviewDTO struct {
	Total   int `json:"total"`
	Open    int `json:"open"`
	Closed  int `json:"closed"`
	Overdue int `json:"overdue"`

	Corrective           int `json:"corrective"`
	Preventive           int `json:"preventive"`
	CorrectivePercentage int `json:"corrective_percentage"`
	PreventivePercentage int `json:"preventive_percentage"`
}

type TeamPerformanceDTO struct {
	TeamID                 uint64 `json:"team_id"`
	TeamName               string `json:"team_name"`
	TotalRequests          int    `json:"total_requests"`
	Completed              int    `json:"completed"`
	Open                   int    `json:"open"`
	AvgResolutionTimeHours int    `json:"avg_resolution_time_hours"`
}

type TechnicianWorkloadDTO struct {
	TechnicianID       uint64  `json:"technician_id"`
	TechnicianName     string  `json:"technician_name"`
	TeamID             *uint64 `json:"team_id"`
	TotalAssigned      int     `json:"total_assigned"`
	Completed          int     `json:"completed"`
	InProgress         int     `json:"in_progress"`
	CurrentlyAssigned  int     `json:"currently_assigned"`
	AvgRepairTimeHours int     `json:"avg_repair_time_hours"`
}

type EquipmentStatDTO struct {
	EquipmentID   uint64 `json:"equipment_id"`
	EquipmentName string `json:"equipment_name"`
	Category      string `json:"category"`
	Department    string `json:"department"`
	TotalRequests int    `json:"total_requests"`
	ScrappedCount int    `json:"scrapped_count"`
	IsScrapped    bool   `json:"is_scrapped"`
}

type EquipmentInsightsDTO struct {
	EquipmentStats    []EquipmentStatDTO `json:"equipment_stats"`
	CategoryBreakdown map[string]int     `json:"category_breakdown"`
	TotalEquipment    int                `json:"total_equipment"`
	TotalScrapped     int                `json:"total_scrapped"`
}
