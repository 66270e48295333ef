package wheel

import "fmt"

// Outcome is the result of a settled spin.
type Outcome struct {
	Index  int
	Label  string
	Winner bool
	Angle  float64
}

func (o Outcome) String() string {
	verdict := "selected"
	if o.Winner {
		verdict = "winner"
	}
	return fmt.Sprintf("#%d %s (%s)", o.Index, o.Label, verdict)
}
