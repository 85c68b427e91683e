package gorm

import "time"

// FlightInstance is one scheduled occurrence of a flight on a service date.
// All timestamps are UTC; arrival is always after departure.
type FlightInstance struct {
	ID                string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	FlightID          string    `gorm:"column:flight_id;type:uuid;not null;index:idx_instance_flight_date,priority:1"`
	DepartureTimeUTC  time.Time `gorm:"column:departure_time_utc;not null;index"`
	ArrivalTimeUTC    time.Time `gorm:"column:arrival_time_utc;not null;index"`
	ServiceDate       time.Time `gorm:"column:service_date;type:date;not null;index;index:idx_instance_flight_date,priority:2"`
	DurationMinutes   int       `gorm:"column:duration_minutes"`
	DepartureTerminal string    `gorm:"column:departure_terminal;type:varchar(10)"`
	ArrivalTerminal   string    `gorm:"column:arrival_terminal;type:varchar(10)"`
	IsActive          bool      `gorm:"column:is_active;default:true"`
	CreatedAt         time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt         time.Time `gorm:"column:updated_at;default:now()"`

	Flight *Flight `gorm:"foreignKey:FlightID"`
}

// TableName specifies the table name for GORM
func (FlightInstance) TableName() string {
	return "flight_instances"
}
