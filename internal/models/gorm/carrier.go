package gorm

import "time"

// Carrier is an airline keyed by IATA code
type Carrier struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	Code      string    `gorm:"column:code;type:varchar(3);not null;uniqueIndex"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

// TableName specifies the table name for GORM
func (Carrier) TableName() string {
	return "carriers"
}
