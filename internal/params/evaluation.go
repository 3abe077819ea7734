package params

import "strings"

// Evaluation flags configure plan evaluation and its supervision reports.
const (
	FlagEvaluate                 = "evaluate"
	FlagEvalThreshold            = "eval-threshold"
	FlagEvalImprovementThreshold = "eval-improvement-threshold"
	FlagEvalIterations           = "eval-iterations"
	FlagEvalRounds               = "eval-rounds"
	FlagExperts                  = "experts"
	FlagEvalStats                = "eval-stats"
	FlagEvalBatch                = "eval-batch"
	FlagSupervision              = "supervision"
	FlagSupervisionConfig        = "supervision-config"
	FlagQualityThreshold         = "quality-threshold"
	FlagDriftThreshold           = "drift-threshold"
	FlagConfidenceThreshold      = "confidence-threshold"
	FlagMaxEvaluationTime        = "max-evaluation-time"
)

const maxExperts = 5

// ReportingFlags are the evaluation operations that report on past runs and therefore do
// not need a goal.
var ReportingFlags = []string{FlagEvalStats, FlagEvalBatch, FlagSupervision, FlagSupervisionConfig}

var evaluationSchema = Schema{
	{Name: FlagEvaluate, Kind: KindBool, Usage: "Run the evaluation engine on a new plan (requires --goal)"},
	{Name: FlagEvalThreshold, Kind: KindFloat, Default: Float(0.7), Usage: "Score a plan must reach to pass (0-1)"},
	{Name: FlagEvalImprovementThreshold, Kind: KindFloat, Default: Float(0.05), Usage: "Minimum score gain to keep iterating (0-1)"},
	{Name: FlagEvalIterations, Kind: KindInt, Default: Int(3), Usage: "Maximum refinement iterations (1-10)"},
	{Name: FlagEvalRounds, Kind: KindInt, Default: Int(2), Usage: "Expert review rounds per iteration (1-10)"},
	{Name: FlagExperts, Kind: KindStrings, Usage: "Expert personas to consult (at most 5)"},
	{Name: FlagEvalStats, Kind: KindBool, Usage: "Show evaluation statistics"},
	{Name: FlagEvalBatch, Kind: KindBool, Usage: "Evaluate stored plans in batch"},
	{Name: FlagSupervision, Kind: KindBool, Usage: "Show the supervision report"},
	{Name: FlagSupervisionConfig, Kind: KindBool, Usage: "Show the supervision configuration"},
	{Name: FlagQualityThreshold, Kind: KindFloat, Default: Float(0.6), Usage: "Supervision quality alert threshold (0-1)"},
	{Name: FlagDriftThreshold, Kind: KindFloat, Default: Float(0.2), Usage: "Supervision score drift alert threshold (0-1)"},
	{Name: FlagConfidenceThreshold, Kind: KindFloat, Default: Float(0.5), Usage: "Supervision evaluator confidence threshold (0-1)"},
	{Name: FlagMaxEvaluationTime, Kind: KindFloat, Default: Float(300), Usage: "Maximum evaluation time in seconds"},
}

// EvaluationHandler validates evaluation and supervision settings.
type EvaluationHandler struct{ flagGroup }

// NewEvaluationHandler returns the handler for evaluation and supervision flags.
func NewEvaluationHandler() *EvaluationHandler {
	return &EvaluationHandler{flagGroup{id: HandlerEvaluation, schema: evaluationSchema}}
}

// Validate checks that thresholds are finite fractions, then the iteration counts, the
// expert list and the time budget.
func (h *EvaluationHandler) Validate(v Values) error {
	return firstError(
		floatRange(v, FlagEvalThreshold, 0, 1),
		floatRange(v, FlagEvalImprovementThreshold, 0, 1),
		intRange(v, FlagEvalIterations, 1, 10),
		intRange(v, FlagEvalRounds, 1, 10),
		validateExperts(v),
		floatRange(v, FlagQualityThreshold, 0, 1),
		floatRange(v, FlagDriftThreshold, 0, 1),
		floatRange(v, FlagConfidenceThreshold, 0, 1),
		positiveFloat(v, FlagMaxEvaluationTime),
	)
}

// Requested reports an evaluation run or any reporting operation. --evaluate selects the
// evaluation operation even though the plan it evaluates still needs a goal.
func (h *EvaluationHandler) Requested(ns Namespace) bool {
	return ns.IsSet(FlagEvaluate) || ns.AnySet(ReportingFlags...)
}

func validateExperts(v Values) error {
	experts, ok := v.Strings(FlagExperts)
	if !ok {
		return nil
	}
	if len(experts) == 0 {
		return fieldErrorf(FlagExperts, "--%s must name at least one expert", FlagExperts)
	}
	if len(experts) > maxExperts {
		return fieldErrorf(FlagExperts, "--%s accepts at most %d experts, got %d", FlagExperts, maxExperts, len(experts))
	}
	for _, e := range experts {
		if strings.TrimSpace(e) == "" {
			return fieldErrorf(FlagExperts, "--%s must not contain empty names", FlagExperts)
		}
	}
	return nil
}
