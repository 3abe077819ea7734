package params

// OperationType is the single intent an invocation resolves to.
type OperationType string

const (
	OpDatabase   OperationType = "database"
	OpEvaluation OperationType = "evaluation"
	OpRerun      OperationType = "rerun"
	OpPlan       OperationType = "plan"
	OpUtility    OperationType = "utility"
	OpHelp       OperationType = "help"
)

// Operations lists every operation type.
var Operations = []OperationType{OpDatabase, OpEvaluation, OpRerun, OpPlan, OpUtility, OpHelp}

// OperationRule maps a predicate over the raw namespace to an operation. Rules are tried in
// priority order and the first match wins; OpHelp is the fallback.
type OperationRule struct {
	Operation OperationType
	Requested func(ns Namespace) bool
}

// DefaultPriority returns the built-in resolution order:
// database, evaluation, rerun, plan, utility, then plan again when a goal is given.
func DefaultPriority(db *DatabaseHandler, eval *EvaluationHandler, plan *PlanHandler, util *UtilityHandler) []OperationRule {
	return []OperationRule{
		{Operation: OpDatabase, Requested: db.Requested},
		{Operation: OpEvaluation, Requested: eval.Requested},
		{Operation: OpRerun, Requested: db.RerunRequested},
		{Operation: OpPlan, Requested: plan.Requested},
		{Operation: OpUtility, Requested: util.Requested},
		{Operation: OpPlan, Requested: goalGiven},
	}
}

func goalGiven(ns Namespace) bool {
	_, ok := ns.Lookup(FlagGoal)
	return ok
}
