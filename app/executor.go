package app

import (
	"context"

	"github.com/armon/go-metrics"

	permissionExported "github.com/uniongov/union-core/x/permission/exported"
	votingTypes "github.com/uniongov/union-core/x/voting/types"
)

var _ votingTypes.Executor = executor{}

// executor runs the calls of winning programs. Calls to this union are handled in place,
// calls to other unions release the app lock until the peer answers.
type executor struct {
	app *App
}

// Execute performs a single remote call on behalf of the union
func (e executor) Execute(ctx context.Context, call permissionExported.RemoteCall) ([]byte, error) {
	target := "self"
	defer func() {
		metrics.IncrCounterWithLabels([]string{"app", "program", "calls"}, 1, []metrics.Label{{Name: "target", Value: target}})
	}()

	if call.Endpoint.CanisterID == e.app.self.String() {
		return e.app.call(ctx, e.app.self, call.Endpoint.Method, call.Args)
	}

	target = "peer"
	e.app.mu.Unlock()
	defer e.app.mu.Lock()

	return e.app.peers.Call(ctx, e.app.self, call)
}
