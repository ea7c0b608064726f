package locationflow

// PermissionState is the coarse location authorization as reported by the
// permission registry. It is derived on every query and never cached.
type PermissionState int

const (
	// PermissionDenied means access is not held and no rationale is required.
	PermissionDenied PermissionState = iota
	// PermissionDeniedWithRationale means access is not held and the platform
	// asks for an explanation before the next request.
	PermissionDeniedWithRationale
	// PermissionGranted means access is held.
	PermissionGranted
)

func (s PermissionState) String() string {
	switch s {
	case PermissionGranted:
		return "granted"
	case PermissionDeniedWithRationale:
		return "denied_with_rationale"
	default:
		return "denied"
	}
}

// Phase is the position of a Flow in the permission sub-flow.
type Phase int

const (
	PhaseUnchecked Phase = iota
	PhaseCheckingPermission
	// PhaseAwaitingRationaleAck waits for the user to acknowledge the
	// rationale message before the OS dialog is shown.
	PhaseAwaitingRationaleAck
	// PhaseAwaitingOSDecision waits for the OS permission dialog.
	PhaseAwaitingOSDecision
	PhaseGranted
	// PhaseDeniedTerminal ends the in-app request path for this session.
	// Recovery goes through the system settings screen.
	PhaseDeniedTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseUnchecked:
		return "unchecked"
	case PhaseCheckingPermission:
		return "checking_permission"
	case PhaseAwaitingRationaleAck:
		return "awaiting_rationale_ack"
	case PhaseAwaitingOSDecision:
		return "awaiting_os_decision"
	case PhaseGranted:
		return "granted"
	case PhaseDeniedTerminal:
		return "denied_terminal"
	default:
		return "unknown"
	}
}

// awaitingUser reports whether a request sequence is outstanding.
func (p Phase) awaitingUser() bool {
	return p == PhaseAwaitingRationaleAck || p == PhaseAwaitingOSDecision
}
