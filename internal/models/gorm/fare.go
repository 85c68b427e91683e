package gorm

import (
	"database/sql"
	"time"
)

// Fare is pricing for a flight instance. Detailed fare rules live behind
// the fare key; search only needs the total price.
type Fare struct {
	ID               string         `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	FlightInstanceID sql.NullString `gorm:"column:flight_instance_id;type:uuid;index"`
	FareKey          string         `gorm:"column:fare_key;type:varchar(500);not null;uniqueIndex"`
	FareClass        string         `gorm:"column:fare_class;type:varchar(20)"`
	FareBrand        string         `gorm:"column:fare_brand;type:varchar(50)"`
	Currency         string         `gorm:"column:currency;type:varchar(3);default:INR"`
	TotalPrice       float64        `gorm:"column:total_price;not null"`
	BaseFare         float64        `gorm:"column:base_fare;not null"`
	TotalTax         float64        `gorm:"column:total_tax;not null"`
	IsRefundable     bool           `gorm:"column:is_refundable;default:false"`
	SeatsAvailable   sql.NullInt64  `gorm:"column:seats_available"`
	ValidFrom        sql.NullTime   `gorm:"column:valid_from"`
	ValidUntil       sql.NullTime   `gorm:"column:valid_until"`
	CreatedAt        time.Time      `gorm:"column:created_at;default:now()"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;default:now()"`
}

// TableName specifies the table name for GORM
func (Fare) TableName() string {
	return "fares"
}
