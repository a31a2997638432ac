// Package tuimsg holds messages that scenes send to the root model
package tuimsg

import (
	"github.com/rgehrsitz/pphgo/internal/domain"
)

// CalculateRequestedMsg asks the root model to run one computation
type CalculateRequestedMsg struct {
	Computation domain.Computation
}

// ComputationSelectedMsg signals a batch entry has been opened
type ComputationSelectedMsg struct {
	Index int
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
