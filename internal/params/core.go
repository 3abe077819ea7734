package params

// Core flags control the overall workflow.
const (
	FlagGoal        = "goal"
	FlagTitle       = "title"
	FlagPlanOnly    = "plan-only"
	FlagExecuteOnly = "execute-only"
	FlagAutoApprove = "auto-approve"
	FlagOutputDir   = "output-dir"
)

var coreSchema = Schema{
	{Name: FlagGoal, Shorthand: "g", Kind: KindString, Usage: "Goal to plan for"},
	{Name: FlagTitle, Shorthand: "t", Kind: KindString, Usage: "Plan title"},
	{Name: FlagPlanOnly, Kind: KindBool, Usage: "Generate the plan without executing it", Exclusive: []string{FlagExecuteOnly}},
	{Name: FlagExecuteOnly, Kind: KindBool, Usage: "Execute a previously generated plan (requires --title)"},
	{Name: FlagAutoApprove, Kind: KindBool, Usage: "Skip plan review before execution"},
	{Name: FlagOutputDir, Kind: KindString, Usage: "Directory for generated artifacts"},
}

// CoreHandler validates workflow control flags.
//
// Whether a goal is required depends on the other groups, so it is decided by the
// goal-required cross rule rather than here.
type CoreHandler struct{ flagGroup }

// NewCoreHandler returns the handler for the goal and workflow control flags.
func NewCoreHandler() *CoreHandler {
	return &CoreHandler{flagGroup{id: HandlerCore, schema: coreSchema}}
}

// Validate checks the workflow mode pair and the free text fields. Whether a goal is
// needed at all is left to the goal-required cross rule.
func (h *CoreHandler) Validate(v Values) error {
	return firstError(
		exclusive(v, FlagPlanOnly, FlagExecuteOnly),
		requires(v, FlagExecuteOnly, FlagTitle),
		nonBlank(v, FlagGoal, 0),
		nonBlank(v, FlagTitle, maxTitleLen),
		nonBlank(v, FlagOutputDir, maxPathLen),
	)
}
