package dto

type AssignRoleDTO struct {
	Role string `json:"role" validate:"required,oneof=user technician manager"`
}

type AssignTeamDTO struct {
	TeamID uint64 `json:"team_id" validate:"required"`
}
