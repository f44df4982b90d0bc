package proposal

import "errors"

var (
	ErrInvalidProposal = errors.New("design link and reason are required")
	ErrProposalPending = errors.New("a design change is already awaiting approval")
	ErrWorkflowClosed  = errors.New("proposal workflow is closed")
)
