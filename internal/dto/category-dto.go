package dto

type CreateCategoryDTO struct {
	Name              string  `json:"name" validate:"required,min=1,max=200"`
	Company           string  `json:"company" validate:"required,min=1,max=200"`
	ResponsibleUserID *uint64 `json:"responsible_user_id"`
}

type UpdateCategoryDTO struct {
	Name              string  `json:"name" validate:"required,min=1,max=200"`
	Company           string  `json:"company" validate:"required,min=1,max=200"`
	ResponsibleUserID *uint64 `json:"responsible_user_id"`
}
