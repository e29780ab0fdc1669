package core

// Operation is the opaque handle for an in-flight video generation job.
// It is created once per video submission and owned exclusively by the
// poller until it resolves or the request is abandoned. Each status check
// returns a refreshed Operation; the poller must always poll with the most
// recently returned value, never the original.
type Operation struct {
	// Provider names the adapter that issued the handle.
	Provider string
	// Token is the raw provider operation value, round-tripped unchanged on
	// every status check. Only the issuing adapter inspects it.
	Token any
	// Done reports completion. While false, ResultURI and Err are unset.
	Done bool
	// ResultURI addresses the finished asset once Done is true. Empty on a
	// done operation means the job produced nothing retrievable.
	ResultURI string
	// Err carries the mapped failure of a done-but-failed operation.
	Err error
}
