package params

// Context flags configure retrieval of prior task context and context snapshots.
const (
	FlagContext         = "context"
	FlagSemanticK       = "semantic-k"
	FlagMinSimilarity   = "min-similarity"
	FlagMaxContextChars = "max-context-chars"
	FlagPerSectionMax   = "per-section-max"
	FlagContextStrategy = "context-strategy"
	FlagLabel           = "label"
	FlagListSnapshots   = "list-snapshots"
	FlagExportSnapshot  = "export-snapshot"
)

// Context retrieval strategies.
const (
	StrategySemantic = "semantic"
	StrategyRecent   = "recent"
	StrategyHybrid   = "hybrid"
)

var contextSchema = Schema{
	{Name: FlagContext, Kind: KindBool, Usage: "Feed related task context into planning"},
	{Name: FlagSemanticK, Kind: KindInt, Default: Int(10), Usage: "Number of semantically similar items to retrieve (1-100)"},
	{Name: FlagMinSimilarity, Kind: KindFloat, Default: Float(0.3), Usage: "Minimum similarity score for retrieved items (0-1)"},
	{Name: FlagMaxContextChars, Kind: KindInt, Default: Int(20000), Usage: "Maximum characters of context in total"},
	{Name: FlagPerSectionMax, Kind: KindInt, Default: Int(4000), Usage: "Maximum characters of context per section"},
	{Name: FlagContextStrategy, Kind: KindString, Default: String(StrategySemantic), Usage: "Retrieval strategy: semantic, recent or hybrid"},
	{Name: FlagLabel, Kind: KindString, Usage: "Label for an exported context snapshot"},
	{Name: FlagListSnapshots, Kind: KindBool, Usage: "List context snapshots of a task (requires --task-id)"},
	{Name: FlagExportSnapshot, Kind: KindBool, Usage: "Export a labelled context snapshot of a task (requires --task-id and --label)"},
}

// ContextHandler validates context retrieval settings.
type ContextHandler struct{ flagGroup }

// NewContextHandler returns the handler for context retrieval and snapshot flags.
func NewContextHandler() *ContextHandler {
	return &ContextHandler{flagGroup{id: HandlerContext, schema: contextSchema}}
}

// Validate checks the retrieval limits, the similarity floor and the strategy name.
// Snapshot dependencies span groups and are checked by the cross rules.
func (h *ContextHandler) Validate(v Values) error {
	return firstError(
		intRange(v, FlagSemanticK, 1, 100),
		floatRange(v, FlagMinSimilarity, 0, 1),
		positiveInt(v, FlagMaxContextChars),
		positiveInt(v, FlagPerSectionMax),
		oneOf(v, FlagContextStrategy, StrategySemantic, StrategyRecent, StrategyHybrid),
		nonBlank(v, FlagLabel, maxTitleLen),
	)
}
