package emit

// Event messages emitted by the search engine.
const (
	MsgSearchStart        = "search_start"
	MsgNodeExpanded       = "node_expanded"
	MsgDuplicateDiscarded = "duplicate_discarded"
	MsgGoalFound          = "goal_found"
	MsgSearchExhausted    = "search_exhausted"
)

// Event describes one step of a search run.
type Event struct {
	// RunID identifies the search run that emitted this event.
	RunID string

	// Strategy is the short strategy name ("dfs", "bfs", "pdfs").
	Strategy string

	// Step is the number of distinct states expanded so far.
	// For node_expanded it counts the expansion being reported (1-indexed).
	Step int

	// Depth is the path length of the node the event refers to.
	// Zero for run-level events.
	Depth int

	// Msg is one of the Msg* constants.
	Msg string

	// Meta carries event-specific data. Common keys:
	//   - "state": the client state value (node_expanded, goal_found)
	//   - "children": number of children produced (node_expanded)
	//   - "frontier": frontier length after the step
	//   - "generated", "expanded", "duplicates": run counters (goal_found, search_exhausted)
	//   - "elapsed_ms": run duration in milliseconds
	Meta map[string]interface{}
}
