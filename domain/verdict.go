package domain

// Outcome enumerates the terminal states of one classification request.
type Outcome string

const (
	Completed          Outcome = "COMPLETED"
	RejectedRateLimit  Outcome = "REJECTED_RATE_LIMIT"
	RejectedEmptyInput Outcome = "REJECTED_EMPTY_INPUT"
	ScoringFailure     Outcome = "SCORING_FAILURE"
)

// Verdict is the result delivered to the caller for one message.
// Reply is always set; Probability, Label, Language and WatchlistHits are
// only meaningful when Outcome is Completed.
type Verdict struct {
	Outcome       Outcome
	Reply         string
	Label         Label
	Probability   float64
	Language      string
	WatchlistHits []string
}
