package entities

// RouteHop is one directed edge in a candidate route chain.
type RouteHop struct {
	ID                     string
	SourceCode             string
	DestinationCode        string
	AverageDurationMinutes *float64
}

// RouteChain is an ordered sequence of 1-3 hops whose endpoints concatenate
// from the search origin to the destination. Intermediates never repeat and
// never equal the endpoints.
type RouteChain []RouteHop
