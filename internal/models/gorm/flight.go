package gorm

import "time"

// Flight is a scheduled carrier service (carrier + flight number) on a route
type Flight struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	RouteID      string    `gorm:"column:route_id;type:uuid;not null;index;uniqueIndex:uq_flight_carrier_number_route"`
	CarrierCode  string    `gorm:"column:carrier_code;type:varchar(3);not null;index;uniqueIndex:uq_flight_carrier_number_route"`
	FlightNumber string    `gorm:"column:flight_number;type:varchar(10);not null;uniqueIndex:uq_flight_carrier_number_route"`
	AircraftType string    `gorm:"column:aircraft_type;type:varchar(50)"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`

	Route *Route `gorm:"foreignKey:RouteID"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}
