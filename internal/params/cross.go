package params

// Cross-handler rule names, used as the Source of their errors.
const (
	RuleSnapshotTask  = "snapshot-task"
	RuleSnapshotLabel = "snapshot-label"
	RuleGoalRequired  = "goal-required"
)

// CrossRule checks a combination of values across handlers. Rules run in order after every
// handler validated successfully; the first failure stops the sequence.
type CrossRule struct {
	Name  string
	Check func(ex Extracted) error
}

// DefaultCrossRules returns the built-in rules in evaluation order.
func DefaultCrossRules() []CrossRule {
	return []CrossRule{
		{Name: RuleSnapshotTask, Check: checkSnapshotTask},
		{Name: RuleSnapshotLabel, Check: checkSnapshotLabel},
		{Name: RuleGoalRequired, Check: checkGoalRequired},
	}
}

func checkSnapshotTask(ex Extracted) error {
	ctx := ex[HandlerContext]
	if ctx.HasAny(FlagListSnapshots, FlagExportSnapshot) && !ex[HandlerDatabase].Has(FlagTaskID) {
		op := FlagListSnapshots
		if ctx.Has(FlagExportSnapshot) {
			op = FlagExportSnapshot
		}
		return fieldErrorf(FlagTaskID, "--%s requires --%s", op, FlagTaskID)
	}
	return nil
}

func checkSnapshotLabel(ex Extracted) error {
	ctx := ex[HandlerContext]
	if ctx.Has(FlagExportSnapshot) && !ctx.Has(FlagLabel) {
		return fieldErrorf(FlagLabel, "--%s requires --%s", FlagExportSnapshot, FlagLabel)
	}
	return nil
}

// checkGoalRequired treats an invocation that names no other operation as a plan creation
// request, which needs a goal.
func checkGoalRequired(ex Extracted) error {
	if goalExempt(ex) || ex[HandlerCore].Has(FlagGoal) {
		return nil
	}
	return fieldErrorf(FlagGoal, "--%s is required to create a plan", FlagGoal)
}

func goalExempt(ex Extracted) bool {
	switch {
	case ex[HandlerCore].Has(FlagExecuteOnly):
		return true
	case len(ex[HandlerDatabase]) > 0:
		return true
	case ex[HandlerEvaluation].HasAny(ReportingFlags...):
		return true
	case ex[HandlerDatabase].HasAny(RerunFlags...):
		return true
	case ex[HandlerPlan].HasAny(FlagListPlans, FlagLoadPlan):
		return true
	case ex[HandlerUtility].HasAny(UtilityOperationFlags...):
		return true
	}
	return false
}
