package params

// Plan flags configure plan generation and stored plans.
const (
	FlagSections      = "sections"
	FlagListPlans     = "list-plans"
	FlagLoadPlan      = "load-plan"
	FlagWebSearch     = "web-search"
	FlagNoWebSearch   = "no-web-search"
	FlagSearchResults = "search-results"
)

const (
	minSections      = 1
	maxSections      = 20
	minSearchResults = 1
	maxSearchResults = 10
)

var planSchema = Schema{
	{Name: FlagSections, Shorthand: "s", Kind: KindInt, Default: Int(5), Usage: "Number of plan sections (1-20)"},
	{Name: FlagListPlans, Kind: KindBool, Usage: "List stored plans"},
	{Name: FlagLoadPlan, Kind: KindString, Usage: "Load a stored plan by title"},
	{Name: FlagWebSearch, Kind: KindBool, Usage: "Enable web research while planning", Exclusive: []string{FlagNoWebSearch}},
	{Name: FlagNoWebSearch, Kind: KindBool, Usage: "Disable web research while planning"},
	{Name: FlagSearchResults, Kind: KindInt, Default: Int(5), Usage: "Web results per research query (1-10)"},
}

// PlanHandler validates plan configuration and detects stored-plan operations.
type PlanHandler struct{ flagGroup }

// NewPlanHandler returns the handler for plan shape and web search flags.
func NewPlanHandler() *PlanHandler {
	return &PlanHandler{flagGroup{id: HandlerPlan, schema: planSchema}}
}

// Validate checks the section and search result bounds.
func (h *PlanHandler) Validate(v Values) error {
	return firstError(
		intRange(v, FlagSections, minSections, maxSections),
		nonBlank(v, FlagLoadPlan, maxTitleLen),
		exclusive(v, FlagWebSearch, FlagNoWebSearch),
		intRange(v, FlagSearchResults, minSearchResults, maxSearchResults),
	)
}

// Requested reports a list or load of stored plans.
func (h *PlanHandler) Requested(ns Namespace) bool {
	return ns.AnySet(FlagListPlans, FlagLoadPlan)
}

// WebSearch resolves the web-search flag pair. ok is false when neither was given.
func WebSearch(v Values) (enabled, ok bool) {
	switch {
	case v.Flag(FlagWebSearch):
		return true, true
	case v.Flag(FlagNoWebSearch):
		return false, true
	}
	return false, false
}
