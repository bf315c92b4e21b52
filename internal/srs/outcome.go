package srs

import "fmt"

// Outcome is the learner's self-reported result for one review.
type Outcome int

const (
	Incorrect Outcome = iota + 1 // did not recall the word
	Correct                      // recalled the word
)

var outcomeNames = [...]string{Incorrect: "incorrect", Correct: "correct"}

// String returns "incorrect" or "correct". For invalid values it returns
// "Outcome(n)".
func (o Outcome) String() string {
	if o.IsValid() {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// IsValid reports whether o is one of the two defined outcomes.
func (o Outcome) IsValid() bool {
	return o == Incorrect || o == Correct
}

// ParseOutcome converts a stored outcome name back to an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "incorrect":
		return Incorrect, nil
	case "correct":
		return Correct, nil
	default:
		return 0, fmt.Errorf("unknown outcome %q", s)
	}
}
