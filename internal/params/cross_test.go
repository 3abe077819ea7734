package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCrossRules_Order(t *testing.T) {
	var names []string
	for _, r := range DefaultCrossRules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{RuleSnapshotTask, RuleSnapshotLabel, RuleGoalRequired}, names)
}

func TestCheckSnapshotTask(t *testing.T) {
	assert.NoError(t, checkSnapshotTask(Extracted{}))
	assert.NoError(t, checkSnapshotTask(Extracted{
		HandlerContext:  {FlagListSnapshots: Bool(true)},
		HandlerDatabase: {FlagTaskID: Int(9)},
	}))

	err := checkSnapshotTask(Extracted{HandlerContext: {FlagListSnapshots: Bool(true)}})
	require.Error(t, err)
	assert.Equal(t, "--list-snapshots requires --task-id", err.Error())

	err = checkSnapshotTask(Extracted{HandlerContext: {
		FlagListSnapshots:  Bool(true),
		FlagExportSnapshot: Bool(true),
	}})
	require.Error(t, err)
	assert.Equal(t, "--export-snapshot requires --task-id", err.Error())
}

func TestCheckSnapshotLabel(t *testing.T) {
	assert.NoError(t, checkSnapshotLabel(Extracted{HandlerContext: {FlagListSnapshots: Bool(true)}}))
	assert.NoError(t, checkSnapshotLabel(Extracted{HandlerContext: {
		FlagExportSnapshot: Bool(true),
		FlagLabel:          String("baseline"),
	}}))

	err := checkSnapshotLabel(Extracted{HandlerContext: {FlagExportSnapshot: Bool(true)}})
	require.Error(t, err)
	assert.Equal(t, "--export-snapshot requires --label", err.Error())
}

func TestCheckGoalRequired(t *testing.T) {
	exempt := map[string]Extracted{
		"goal given":      {HandlerCore: {FlagGoal: String("g")}},
		"execute only":    {HandlerCore: {FlagExecuteOnly: Bool(true), FlagTitle: String("t")}},
		"database option": {HandlerDatabase: {FlagDBInfo: Bool(true)}},
		"bare task id":    {HandlerDatabase: {FlagTaskID: Int(3)}},
		"rerun":           {HandlerDatabase: {FlagRerunSubtree: Int(3)}},
		"eval stats":      {HandlerEvaluation: {FlagEvalStats: Bool(true)}},
		"supervision":     {HandlerEvaluation: {FlagSupervisionConfig: Bool(true)}},
		"list plans":      {HandlerPlan: {FlagListPlans: Bool(true)}},
		"load plan":       {HandlerPlan: {FlagLoadPlan: String("p")}},
		"build index":     {HandlerUtility: {FlagBuildIndex: Bool(true)}},
		"export index":    {HandlerUtility: {FlagExportIndex: String("x.idx")}},
	}
	for name, ex := range exempt {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, checkGoalRequired(ex))
		})
	}

	needsGoal := map[string]Extracted{
		"nothing":         {},
		"sections only":   {HandlerPlan: {FlagSections: Int(5)}},
		"evaluate":        {HandlerEvaluation: {FlagEvaluate: Bool(true)}},
		"context only":    {HandlerContext: {FlagContext: Bool(true)}},
		"embedding model": {HandlerUtility: {FlagEmbeddingModel: String("m")}},
		"plan only":       {HandlerCore: {FlagPlanOnly: Bool(true)}},
	}
	for name, ex := range needsGoal {
		t.Run(name, func(t *testing.T) {
			err := checkGoalRequired(ex)
			require.Error(t, err)
			assert.Equal(t, "--goal is required to create a plan", err.Error())
		})
	}
}
