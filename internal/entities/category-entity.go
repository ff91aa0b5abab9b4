package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type EquipmentCategory struct {
	ID                uint64      `json:"id" db:"id"`
	Name              string      `json:"name" db:"name"`
	Company           string      `json:"company" db:"company"`
	ResponsibleUserID null.Uint64 `json:"responsible_user_id" db:"responsible_user_id"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
}
