package domain

// ActionRequest represents a side-effect that the engine requests the host to perform.
type ActionRequest struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Standard Action Types
const (
	// ActionNavigate asks the host to open a related record.
	// Payload: NavigationRequest
	ActionNavigate = "NAVIGATE"

	// ActionFocusCell asks the host to move focus to a cell once the current
	// update cycle has rendered. If the cell no longer exists the host skips it.
	// Payload: EditingCursor
	ActionFocusCell = "FOCUS_CELL"

	// ActionOutputsChanged tells the host that the workflow outputs changed.
	// Payload: Outputs
	ActionOutputsChanged = "OUTPUTS_CHANGED"
)

// NavigationRequest carries the identifier of the related record to open.
type NavigationRequest struct {
	RecordID string `json:"record_id"`
}
