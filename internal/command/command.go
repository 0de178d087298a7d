// Package command holds the application's use cases: recording activity,
// building recommendations and reminders, checking out a cart, and issuing
// access tokens. Each command depends only on the narrow datasource
// interfaces it needs, so tests can drive it with small hand-written fakes.
package command

import "context"

// Command is the generic interface for all commands.
// Req is the request type and Res is the result type.
type Command[Req, Res any] interface {
	Execute(ctx context.Context, req Req) (Res, error)
}

// Empty is used as the request or result type for commands that need no
// payload on that side, like the reminder generation batch run.
type Empty struct{}
