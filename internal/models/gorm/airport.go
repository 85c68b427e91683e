package gorm

import "time"

// Airport is reference data keyed by IATA code. Rows are created and
// updated only by the ingestion path; the search core reads them.
type Airport struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	Code        string    `gorm:"column:code;type:varchar(3);not null;uniqueIndex"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	City        string    `gorm:"column:city;type:varchar(100)"`
	Country     string    `gorm:"column:country;type:varchar(100)"`
	CountryCode string    `gorm:"column:country_code;type:varchar(2)"`
	Timezone    string    `gorm:"column:timezone;type:varchar(50)"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}
