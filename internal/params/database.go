package params

// Database flags drive task store and cache administration.
const (
	FlagDBInfo       = "db-info"
	FlagListTasks    = "list-tasks"
	FlagListChildren = "list-children"
	FlagGetSubtree   = "get-subtree"
	FlagMoveTask     = "move-task"
	FlagTaskID       = "task-id"
	FlagNewParentID  = "new-parent-id"
	FlagRerunTask    = "rerun-task"
	FlagRerunSubtree = "rerun-subtree"
	FlagBackup       = "backup"
	FlagRestore      = "restore"
	FlagClearCache   = "clear-cache"
)

// RootParentID moves a task to the top level.
const RootParentID = -1

// DatabaseOperationFlags select a database operation. Rerun flags are separate because
// they resolve to their own operation type.
var DatabaseOperationFlags = []string{
	FlagDBInfo, FlagListTasks, FlagListChildren, FlagGetSubtree, FlagMoveTask,
	FlagBackup, FlagRestore, FlagClearCache,
}

// RerunFlags re-execute stored tasks.
var RerunFlags = []string{FlagRerunTask, FlagRerunSubtree}

var databaseSchema = Schema{
	{Name: FlagDBInfo, Kind: KindBool, Usage: "Show task database information"},
	{Name: FlagListTasks, Kind: KindBool, Usage: "List stored tasks"},
	{Name: FlagListChildren, Kind: KindBool, Usage: "List children of a task (requires --task-id)"},
	{Name: FlagGetSubtree, Kind: KindBool, Usage: "Show the subtree under a task (requires --task-id)"},
	{Name: FlagMoveTask, Kind: KindBool, Usage: "Move a task under a new parent (requires --task-id and --new-parent-id)"},
	{Name: FlagTaskID, Kind: KindInt, Usage: "Task id to operate on"},
	{Name: FlagNewParentID, Kind: KindInt, Usage: "New parent id for --move-task (-1 for top level)"},
	{Name: FlagRerunTask, Kind: KindInt, Usage: "Re-run a single task by id", Exclusive: []string{FlagRerunSubtree}},
	{Name: FlagRerunSubtree, Kind: KindInt, Usage: "Re-run a task and all of its descendants by id"},
	{Name: FlagBackup, Kind: KindString, Usage: "Back up the task database to a file", Exclusive: []string{FlagRestore}},
	{Name: FlagRestore, Kind: KindString, Usage: "Restore the task database from a file"},
	{Name: FlagClearCache, Kind: KindBool, Usage: "Clear cached search and embedding results"},
}

// DatabaseHandler validates task store administration flags.
type DatabaseHandler struct{ flagGroup }

// NewDatabaseHandler returns the handler for task tree and backup flags.
func NewDatabaseHandler() *DatabaseHandler {
	return &DatabaseHandler{flagGroup{id: HandlerDatabase, schema: databaseSchema}}
}

// Validate checks task ids, move targets and the backup/restore pair.
func (h *DatabaseHandler) Validate(v Values) error {
	return firstError(
		requires(v, FlagListChildren, FlagTaskID),
		requires(v, FlagGetSubtree, FlagTaskID),
		requires(v, FlagMoveTask, FlagTaskID),
		requires(v, FlagMoveTask, FlagNewParentID),
		exclusive(v, FlagRerunTask, FlagRerunSubtree),
		positiveInt(v, FlagTaskID),
		positiveInt(v, FlagRerunTask),
		positiveInt(v, FlagRerunSubtree),
		intAtLeast(v, FlagNewParentID, RootParentID),
		validateMove(v),
		exclusive(v, FlagBackup, FlagRestore),
		nonBlank(v, FlagBackup, maxPathLen),
		nonBlank(v, FlagRestore, maxPathLen),
	)
}

// Requested reports a database operation. Reruns are not database operations.
func (h *DatabaseHandler) Requested(ns Namespace) bool {
	return ns.AnySet(DatabaseOperationFlags...)
}

// RerunRequested reports a rerun of stored tasks.
func (h *DatabaseHandler) RerunRequested(ns Namespace) bool {
	return ns.AnySet(RerunFlags...)
}

func validateMove(v Values) error {
	if !v.Has(FlagMoveTask) {
		return nil
	}
	task, _ := v.Int(FlagTaskID)
	parent, _ := v.Int(FlagNewParentID)
	if task == parent {
		return fieldErrorf(FlagNewParentID, "--%s must differ from --%s", FlagNewParentID, FlagTaskID)
	}
	return nil
}
