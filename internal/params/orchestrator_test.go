package params

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	return verr
}

func TestProcess_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		ns        Namespace
		operation OperationType
		source    string
		message   string
	}{
		{
			name:      "goal with sections",
			ns:        Namespace{FlagGoal: String("Test goal"), FlagSections: Int(5)},
			operation: OpPlan,
		},
		{
			name:      "sections out of range",
			ns:        Namespace{FlagGoal: String("Test goal"), FlagSections: Int(25)},
			operation: OpPlan,
			source:    string(HandlerPlan),
			message:   "--sections must be between 1 and 20, got 25",
		},
		{
			name:      "export snapshot without label",
			ns:        Namespace{FlagExportSnapshot: Bool(true), FlagTaskID: Int(123)},
			operation: OpHelp,
			source:    RuleSnapshotLabel,
			message:   "--export-snapshot requires --label",
		},
		{
			name:      "export snapshot without task",
			ns:        Namespace{FlagExportSnapshot: Bool(true)},
			operation: OpHelp,
			source:    RuleSnapshotTask,
			message:   "--export-snapshot requires --task-id",
		},
		{
			name:      "database wins over evaluation",
			ns:        Namespace{FlagDBInfo: Bool(true), FlagEvalStats: Bool(true)},
			operation: OpDatabase,
		},
		{
			name:      "no flags",
			ns:        Namespace{},
			operation: OpHelp,
			source:    RuleGoalRequired,
			message:   "--goal is required to create a plan",
		},
		{
			name:      "rerun",
			ns:        Namespace{FlagRerunTask: Int(4)},
			operation: OpRerun,
		},
		{
			name:      "evaluation with goal",
			ns:        Namespace{FlagGoal: String("g"), FlagEvaluate: Bool(true), FlagExperts: Strings("security")},
			operation: OpEvaluation,
		},
		{
			name:      "evaluate without goal",
			ns:        Namespace{FlagEvaluate: Bool(true)},
			operation: OpEvaluation,
			source:    RuleGoalRequired,
			message:   "--goal is required to create a plan",
		},
		{
			name:      "non-finite similarity",
			ns:        Namespace{FlagGoal: String("g"), FlagContext: Bool(true), FlagMinSimilarity: Float(math.NaN())},
			operation: OpPlan,
			source:    string(HandlerContext),
			message:   "--min-similarity must be between 0 and 1, got NaN",
		},
		{
			name:      "list plans",
			ns:        Namespace{FlagListPlans: Bool(true)},
			operation: OpPlan,
		},
		{
			name:      "utility",
			ns:        Namespace{FlagBuildIndex: Bool(true)},
			operation: OpUtility,
		},
		{
			name:      "execute only falls through to help",
			ns:        Namespace{FlagExecuteOnly: Bool(true), FlagTitle: String("Saved")},
			operation: OpHelp,
		},
		{
			name:      "exclusive core flags",
			ns:        Namespace{FlagGoal: String("g"), FlagPlanOnly: Bool(true), FlagExecuteOnly: Bool(true), FlagTitle: String("t")},
			operation: OpPlan,
			source:    string(HandlerCore),
			message:   "--plan-only and --execute-only are mutually exclusive",
		},
	}

	o := Default()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := o.Process(tc.ns)
			assert.Equal(t, tc.operation, res.Operation)

			if tc.source == "" {
				assert.NoError(t, res.Err)
				assert.True(t, res.OK())
				return
			}
			verr := requireValidationError(t, res.Err)
			assert.False(t, res.OK())
			assert.Equal(t, tc.source, verr.Source)
			assert.Equal(t, tc.message, verr.Message)
			assert.Equal(t, tc.source+": "+tc.message, verr.Error())
		})
	}
}

func TestExtract_OmitsEmptyGroups(t *testing.T) {
	ns := Namespace{FlagGoal: String("Test goal"), FlagSections: Int(5)}
	want := Extracted{
		HandlerCore: {FlagGoal: String("Test goal")},
		HandlerPlan: {FlagSections: Int(5)},
	}

	got := Default().Extract(ns)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_Semantics(t *testing.T) {
	ns := Namespace{
		FlagPlanOnly:      Bool(false),
		FlagAutoApprove:   Bool(true),
		FlagMinSimilarity: Int(1),
		FlagSemanticK:     String("ten"),
		FlagExperts:       Strings("a", "b"),
		"not-a-flag":      String("ignored"),
	}
	want := Extracted{
		HandlerCore:       {FlagAutoApprove: Bool(true)},
		HandlerContext:    {FlagMinSimilarity: Float(1)},
		HandlerEvaluation: {FlagExperts: Strings("a", "b")},
	}

	got := Default().Extract(ns)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_IsPure(t *testing.T) {
	ns := Namespace{
		FlagGoal:     String("g"),
		FlagSections: Int(3),
		FlagExperts:  Strings("x"),
		FlagContext:  Bool(true),
		FlagTaskID:   Int(2),
	}
	before := cloneNamespace(ns)

	o := Default()
	first := o.Extract(ns)
	second := o.Extract(ns)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Extract() not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, ns); diff != "" {
		t.Errorf("Extract() mutated its input (-before +after):\n%s", diff)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	ex := Extracted{
		HandlerCore:     {FlagGoal: String("g")},
		HandlerDatabase: {FlagMoveTask: Bool(true), FlagTaskID: Int(5), FlagNewParentID: Int(5)},
	}
	before := cloneExtracted(ex)

	err := Default().Validate(ex)
	verr := requireValidationError(t, err)
	assert.Equal(t, string(HandlerDatabase), verr.Source)
	assert.Equal(t, FlagNewParentID, verr.Field)

	if diff := cmp.Diff(before, ex); diff != "" {
		t.Errorf("Validate() mutated its input (-before +after):\n%s", diff)
	}
}

func TestValidate_HandlerOrderWins(t *testing.T) {
	// Both core and utility are invalid; core runs first.
	ns := Namespace{FlagGoal: String(" "), FlagEmbeddingBatchSize: Int(0)}
	res := Default().Process(ns)
	verr := requireValidationError(t, res.Err)
	assert.Equal(t, string(HandlerCore), verr.Source)
	assert.Equal(t, FlagGoal, verr.Field)
}

func TestValidate_HandlersBeforeCrossRules(t *testing.T) {
	// Missing goal and an invalid context value: the handler failure is reported.
	ns := Namespace{FlagSemanticK: Int(0)}
	res := Default().Process(ns)
	verr := requireValidationError(t, res.Err)
	assert.Equal(t, string(HandlerContext), verr.Source)
}

type recordingHandler struct {
	flagGroup
	err   error
	calls *[]string
}

func (h recordingHandler) Validate(Values) error {
	*h.calls = append(*h.calls, string(h.id))
	return h.err
}

func TestValidate_ShortCircuits(t *testing.T) {
	var calls []string
	mk := func(id string, err error) Handler {
		return recordingHandler{flagGroup: flagGroup{id: HandlerID(id)}, err: err, calls: &calls}
	}
	rule := CrossRule{Name: "never", Check: func(Extracted) error {
		calls = append(calls, "never")
		return nil
	}}

	o := New([]Handler{
		mk("first", nil),
		mk("second", errors.New("boom")),
		mk("third", nil),
	}, []CrossRule{rule}, nil)

	verr := requireValidationError(t, o.Validate(Extracted{}))
	assert.Equal(t, "second", verr.Source)
	assert.Equal(t, "boom", verr.Message)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestValidate_CrossRulesShortCircuit(t *testing.T) {
	var calls []string
	rule := func(name string, err error) CrossRule {
		return CrossRule{Name: name, Check: func(Extracted) error {
			calls = append(calls, name)
			return err
		}}
	}

	o := New(nil, []CrossRule{rule("a", nil), rule("b", errors.New("bad")), rule("c", nil)}, nil)
	verr := requireValidationError(t, o.Validate(Extracted{}))
	assert.Equal(t, "b", verr.Source)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestResolveOperation_Priority(t *testing.T) {
	tests := []struct {
		name string
		ns   Namespace
		want OperationType
	}{
		{"database beats everything", Namespace{FlagListTasks: Bool(true), FlagEvaluate: Bool(true), FlagRerunTask: Int(1), FlagListPlans: Bool(true), FlagBuildIndex: Bool(true), FlagGoal: String("g")}, OpDatabase},
		{"evaluation beats rerun", Namespace{FlagEvaluate: Bool(true), FlagRerunTask: Int(1)}, OpEvaluation},
		{"rerun beats plan", Namespace{FlagRerunSubtree: Int(1), FlagLoadPlan: String("p")}, OpRerun},
		{"plan beats utility", Namespace{FlagListPlans: Bool(true), FlagGenerateEmbeddings: Bool(true)}, OpPlan},
		{"utility beats goal", Namespace{FlagExportIndex: String("a.idx"), FlagGoal: String("g")}, OpUtility},
		{"goal alone", Namespace{FlagGoal: String("g")}, OpPlan},
		{"empty goal still plans", Namespace{FlagGoal: String("")}, OpPlan},
		{"false booleans ignored", Namespace{FlagDBInfo: Bool(false), FlagEvaluate: Bool(false)}, OpHelp},
		{"options without operation", Namespace{FlagSections: Int(5), FlagTaskID: Int(1)}, OpHelp},
	}

	o := Default()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, o.ResolveOperation(tc.ns))
		})
	}
}

func TestResolveOperation_IsTotal(t *testing.T) {
	triggers := []Namespace{
		{FlagDBInfo: Bool(true)},
		{FlagEvaluate: Bool(true)},
		{FlagRerunTask: Int(1)},
		{FlagListPlans: Bool(true)},
		{FlagBuildIndex: Bool(true)},
		{FlagGoal: String("g")},
		{FlagEvalStats: Bool(true)},
		{FlagSections: Int(30)},
	}

	o := Default()
	for mask := 0; mask < 1<<len(triggers); mask++ {
		ns := Namespace{}
		for i, trig := range triggers {
			if mask&(1<<i) != 0 {
				for k, v := range trig {
					ns[k] = v
				}
			}
		}
		res := o.Process(ns)
		require.Contains(t, Operations, res.Operation, "mask %b", mask)
		if res.Err != nil {
			requireValidationError(t, res.Err)
			assert.Nil(t, res.Context)
		}
	}
}

func TestProcess_ContextProjection(t *testing.T) {
	o := Default()

	res := o.Process(Namespace{FlagGoal: String("g"), FlagContext: Bool(true), FlagSemanticK: Int(25)})
	require.NoError(t, res.Err)
	require.NotNil(t, res.Context)
	assert.Equal(t, ContextOptions{
		SemanticK:     25,
		MinSimilarity: 0.3,
		MaxChars:      20000,
		PerSectionMax: 4000,
		Strategy:      StrategySemantic,
	}, *res.Context)

	res = o.Process(Namespace{FlagGoal: String("g"), FlagSemanticK: Int(25)})
	require.NoError(t, res.Err)
	assert.Nil(t, res.Context, "no projection without --context")

	res = o.Process(Namespace{FlagGoal: String("g"), FlagContext: Bool(true), FlagSemanticK: Int(0)})
	require.Error(t, res.Err)
	assert.Nil(t, res.Context, "no projection when validation failed")
}

type tagHandler struct{ flagGroup }

func (tagHandler) Validate(v Values) error {
	if s, ok := v.String("tag"); ok && s == "bad" {
		return fieldErrorf("tag", "--tag must not be %q", s)
	}
	return nil
}

func (tagHandler) Requested(ns Namespace) bool { return ns.IsSet("tag") }

func TestNew_ExtendsWithHandler(t *testing.T) {
	tags := tagHandler{flagGroup{id: "tags", schema: Schema{{Name: "tag", Kind: KindString}}}}
	base := Default()

	handlers := append(base.Handlers(), tags)
	priority := append([]OperationRule{{Operation: "tag", Requested: tags.Requested}},
		DefaultPriority(NewDatabaseHandler(), NewEvaluationHandler(), NewPlanHandler(), NewUtilityHandler())...)
	o := New(handlers, DefaultCrossRules(), priority)

	res := o.Process(Namespace{"tag": String("release"), FlagGoal: String("g")})
	require.NoError(t, res.Err)
	assert.Equal(t, OperationType("tag"), res.Operation)
	assert.Equal(t, Values{"tag": String("release")}, res.Values["tags"])

	res = o.Process(Namespace{"tag": String("bad"), FlagGoal: String("g")})
	verr := requireValidationError(t, res.Err)
	assert.Equal(t, "tags", verr.Source)

	// The base orchestrator is unaffected.
	assert.Len(t, base.Handlers(), 6)
	assert.False(t, slices.ContainsFunc(base.Handlers(), func(h Handler) bool { return h.ID() == "tags" }))
}

func TestOrchestrator_LogsStages(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	o := Default().WithLogger(zap.New(core))

	o.Process(Namespace{FlagSections: Int(25), FlagGoal: String("g")})

	assert.Equal(t, 1, logs.FilterMessage("Extracted flag values").Len())
	failed := logs.FilterMessage("Handler validation failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "plan", failed[0].ContextMap()["handler"])
	assert.Equal(t, 1, logs.FilterMessage("Resolved operation").Len())
}

func cloneNamespace(ns Namespace) Namespace {
	out := Namespace{}
	for k, v := range ns {
		out[k] = v
	}
	return out
}

func cloneExtracted(ex Extracted) Extracted {
	out := Extracted{}
	for id, vals := range ex {
		cp := Values{}
		for k, v := range vals {
			cp[k] = v
		}
		out[id] = cp
	}
	return out
}
