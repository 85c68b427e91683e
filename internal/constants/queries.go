package constants

// Bulk instance fetch for a set of routes on a service date. Expanded with
// sqlx.In and rebound to the driver's bindvar style before execution. The
// departure-time floor clause is appended by the repository when a floor
// is supplied.
const (
	FetchInstancesBulk = `
	SELECT
		fi.id                 AS instance_id,
		f.route_id            AS route_id,
		f.carrier_code        AS carrier_code,
		f.flight_number       AS flight_number,
		r.source_code         AS source_code,
		r.destination_code    AS destination_code,
		fi.departure_time_utc AS departure_time_utc,
		fi.arrival_time_utc   AS arrival_time_utc,
		fi.duration_minutes   AS duration_minutes
	FROM flight_instances fi
	JOIN flights f ON fi.flight_id = f.id
	JOIN routes r ON f.route_id = r.id
	WHERE f.route_id IN (?)
	  AND fi.service_date = ?
	  AND fi.is_active = TRUE
	`

	FetchInstancesMinDepartureClause = ` AND fi.departure_time_utc > ?`

	FetchInstancesOrderClause = ` ORDER BY fi.departure_time_utc ASC`
)
