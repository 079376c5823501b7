package interfaces

import (
	"context"

	"github.com/lexdesk/claimsync/pkg/domain/model"
)

// ToastSink receives every toast as it is raised. Implementations must not
// block for long; slow delivery belongs in a goroutine.
type ToastSink interface {
	Deliver(ctx context.Context, toast *model.Toast)
}
