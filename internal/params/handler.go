package params

// HandlerID is the stable key a handler's values are stored under.
type HandlerID string

const (
	HandlerCore       HandlerID = "core"
	HandlerPlan       HandlerID = "plan"
	HandlerContext    HandlerID = "context"
	HandlerEvaluation HandlerID = "evaluation"
	HandlerDatabase   HandlerID = "database"
	HandlerUtility    HandlerID = "utility"
)

// Handler owns one functional group of flags.
//
// Extract must be pure and read only the handler's own flags. Validate applies local rules
// only, must not mutate its input and reports the first violated rule.
type Handler interface {
	ID() HandlerID
	Schema() Schema
	DeclareFlags(target SchemaTarget)
	Extract(ns Namespace) Values
	Validate(v Values) error
}

// Requester is implemented by handlers whose group can be the active operation.
type Requester interface {
	Requested(ns Namespace) bool
}

// Shared length limits.
const (
	maxTitleLen = 100
	maxPathLen  = 255
)
