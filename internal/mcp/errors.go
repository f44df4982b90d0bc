package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/designboard/internal/domain/board"
	"github.com/rpggio/designboard/internal/domain/consensus"
	"github.com/rpggio/designboard/internal/domain/proposal"
	"github.com/rpggio/designboard/internal/domain/task"
)

var (
	ErrUnknownMethod = errors.New("unknown method")
	ErrInvalidParams = errors.New("invalid params")
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return &APIError{Code: "TASK_NOT_FOUND", Message: "task not found", RecoveryHint: "Call list_tasks for valid IDs"}
	case errors.Is(err, board.ErrColumnNotFound):
		return &APIError{Code: "COLUMN_NOT_FOUND", Message: "column not found", RecoveryHint: "Call get_board for valid column IDs"}
	case errors.Is(err, board.ErrBoardNotFound):
		return &APIError{Code: "BOARD_NOT_FOUND", Message: "board has not been loaded", RecoveryHint: "Restart with a seed document"}
	case errors.Is(err, proposal.ErrProposalPending):
		return &APIError{Code: "PROPOSAL_PENDING", Message: "a design change is already awaiting approval", RecoveryHint: "Wait for get_proposal_state to report approved"}
	case errors.Is(err, proposal.ErrWorkflowClosed):
		return &APIError{Code: "SHUTTING_DOWN", Message: "server is shutting down"}
	case errors.Is(err, consensus.ErrEmptyConsensus),
		errors.Is(err, proposal.ErrInvalidProposal),
		errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, board.ErrInvalidInput),
		errors.Is(err, ErrInvalidParams):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Provide non-blank values"}
	case errors.Is(err, ErrUnknownMethod):
		return &APIError{Code: "UNKNOWN_METHOD", Message: err.Error()}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
