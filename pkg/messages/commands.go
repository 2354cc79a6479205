package messages

import (
	"github.com/google/uuid"

	"go-deskpilot/pkg/models"
)

// RunCommand asks a pipeline actor to process one command end to end. The
// actor responds with *models.CommandResult and stops itself.
type RunCommand struct {
	RequestID uuid.UUID
	Command   models.Command
}
