package gorm

import "time"

// Route is a directed edge between two airports. AverageDurationMinutes is
// a historical aggregate maintained by the route-duration job and is used
// only as a ranking heuristic when enumerating two-stop chains.
type Route struct {
	ID                     string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	SourceCode             string    `gorm:"column:source_code;type:varchar(3);not null;index;uniqueIndex:uq_route_source_dest"`
	DestinationCode        string    `gorm:"column:destination_code;type:varchar(3);not null;index;uniqueIndex:uq_route_source_dest"`
	AverageDurationMinutes *float64  `gorm:"column:average_duration_minutes"`
	CreatedAt              time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt              time.Time `gorm:"column:updated_at;default:now()"`
}

// TableName specifies the table name for GORM
func (Route) TableName() string {
	return "routes"
}
