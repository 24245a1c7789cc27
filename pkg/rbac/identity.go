package rbac

import "context"

// actorCtxKey is an unexported type used as the context key for Actor.
type actorCtxKey struct{}

// Actor represents the authenticated user making a request. Identity is
// supplied by an external identity provider and trusted as given; the
// portal only interprets the role.
type Actor struct {
	ID       string
	Username string
	Role     Role
}

// Authenticated reports whether the actor carries a stable identity.
func (a Actor) Authenticated() bool {
	return a.ID != ""
}

// WithActor returns a new context with the given Actor attached.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// ActorFromContext retrieves the Actor from the context.
// Returns the zero value and false if no actor is set.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(Actor)
	return actor, ok
}
