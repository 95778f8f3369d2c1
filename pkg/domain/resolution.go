package domain

// OutputColumn is the name of the column appended to the header row.
const OutputColumn = "Unshortened URL"

// FailurePrefix starts every failure cell written to the output column.
const FailurePrefix = "Error: "

// Outcome classifies how resolving a single cell ended.
type Outcome string

const (
	// OutcomeResolved indicates the redirect chain reached a destination outside the shortener denylist.
	OutcomeResolved Outcome = "RESOLVED"
	// OutcomeNetworkError indicates the request could not be built or the HTTP exchange failed.
	OutcomeNetworkError Outcome = "NETWORK_ERROR"
	// OutcomeShortenerLoop indicates the final URL is still hosted by a known shortener.
	OutcomeShortenerLoop Outcome = "SHORTENER_LOOP"
	// OutcomeOutOfRange indicates the row has no cell at the selected column.
	OutcomeOutOfRange Outcome = "COLUMN_OUT_OF_RANGE"
)

// Resolution is the tagged result written to the output column for one row.
// A resolved value carries URL, a failure carries Reason.
type Resolution struct {
	Outcome Outcome
	URL     string
	Reason  string
}

// Resolved returns a successful resolution for the final URL.
func Resolved(finalURL string) Resolution {
	return Resolution{Outcome: OutcomeResolved, URL: finalURL}
}

// NetworkFailure converts a request error into a failure cell.
func NetworkFailure(err error) Resolution {
	return Resolution{Outcome: OutcomeNetworkError, Reason: FailurePrefix + err.Error()}
}

// ShortenerFailure is returned when the redirect chain ended on a shortener host.
func ShortenerFailure() Resolution {
	return Resolution{Outcome: OutcomeShortenerLoop, Reason: FailurePrefix + "Still on shortener domain"}
}

// OutOfRangeFailure is recorded for rows shorter than the selected column.
func OutOfRangeFailure() Resolution {
	return Resolution{Outcome: OutcomeOutOfRange, Reason: FailurePrefix + "Column index out of range"}
}

// Failed reports whether r is one of the failure outcomes.
func (r Resolution) Failed() bool { return r.Outcome != OutcomeResolved }

// String returns the cell text: the URL when resolved, the reason otherwise.
func (r Resolution) String() string {
	if r.Failed() {
		return r.Reason
	}

	return r.URL
}
