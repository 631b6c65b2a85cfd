package reconcile

// ActionType represents the type of cache mutation.
type ActionType string

const (
	// ActionDropReference removes one mod name from an archive's reference set.
	ActionDropReference ActionType = "drop_reference"
	// ActionDeleteArchive removes an archive entry that nobody references anymore.
	ActionDeleteArchive ActionType = "delete_archive"
)

// Action represents a planned cache mutation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// ArchiveID is the cache key the action applies to.
	ArchiveID string `json:"archive_id"`

	// ModName is the dropped reference. Empty for ActionDeleteArchive.
	ModName string `json:"mod_name,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// ReconcilePlan contains the planned actions and their summary.
type ReconcilePlan struct {
	Actions []Action    `json:"actions"`
	Summary PlanSummary `json:"summary"`
}

// Empty reports whether the plan has nothing to do.
func (p *ReconcilePlan) Empty() bool {
	return p == nil || len(p.Actions) == 0
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalArchives is the number of cached archives inspected.
	TotalArchives int `json:"total_archives"`

	// StaleReferences counts references to mods outside the live roster.
	StaleReferences int `json:"stale_references"`

	// DeletedArchives counts archives that end up unreferenced.
	DeletedArchives int `json:"deleted_archives"`

	// StaleMods lists the distinct stale mod names, sorted.
	StaleMods []string `json:"stale_mods"`
}

// ReconcileOptions controls whether a plan is executed.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed indicates the caller accepted the destructive actions.
	// If false, nothing executes regardless of DryRun.
	Confirmed bool
}

// Executes reports whether Apply would mutate anything under these options.
func (o ReconcileOptions) Executes() bool {
	return o.Confirmed && !o.DryRun
}
