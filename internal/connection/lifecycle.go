// Package connection implements the connection manager: the state
// machine and portable event reactor that adapt an injected
// byte-stream transport to the framer/exchange engine (spec.md §4.5).
//
// The manager never owns a socket. It owns run-loop registration
// (reactor), the per-connection framer/exchange plumbing lives one
// layer up in the server/client application controllers, and lifecycle
// transitions are surfaced as a single tagged-event type rather than
// the source's delegate-per-stage hierarchy (spec.md §9, "Delegate
// hierarchies → tagged events").
package connection

// Stage names one of the five lifecycle phases a connection manager
// drives. The source's delegate hierarchy had one protocol per stage
// per outcome; here it collapses to a single enum axis.
type Stage int

const (
	StageResolve Stage = iota
	StageConnect
	StageListen
	StageAccept
	StageDisconnect
)

func (s Stage) String() string {
	switch s {
	case StageResolve:
		return "resolve"
	case StageConnect:
		return "connect"
	case StageListen:
		return "listen"
	case StageAccept:
		return "accept"
	case StageDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

// Outcome is the second axis of a lifecycle event. The source's "is"
// outcome was a UI hint only (spec.md §9) and is dropped.
type Outcome int

const (
	Will Outcome = iota
	Did
	DidNot
)

func (o Outcome) String() string {
	switch o {
	case Will:
		return "will"
	case Did:
		return "did"
	case DidNot:
		return "didNot"
	default:
		return "unknown"
	}
}

// Event is the single tagged connection-lifecycle event replacing the
// source's will/is/did/didNot × resolve/connect/listen/accept/disconnect
// delegate matrix. Err is non-nil only when Outcome is DidNot.
type Event struct {
	Stage Stage
	Outcome
	Err error
}

// Handler observes lifecycle events from a Client or Server state
// machine. Invoked synchronously on the caller's goroutine, matching
// the single-threaded run-context model of spec.md §5.
type Handler func(Event)

func (h Handler) fire(stage Stage, outcome Outcome, err error) {
	if h == nil {
		return
	}
	h(Event{Stage: stage, Outcome: outcome, Err: err})
}
