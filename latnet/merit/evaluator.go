package merit

// State is the evaluator lifecycle state: an evaluator starts Idle, moves
// to Building as coordinates are added, and ends in Complete (merit
// available) or Aborted (merit exceeded the best known so far partway
// through and further work was abandoned).
type State int

const (
	Idle State = iota
	Building
	Complete
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Building:
		return "Building"
	case Complete:
		return "Complete"
	case Aborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}
