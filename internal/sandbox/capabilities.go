// Package sandbox executes page logic blocks against a fixed capability
// surface and returns the values they bind.
//
// Logic sees exactly four globals: db (data collections), api (outbound
// HTTP), socket (publish/subscribe) and auth (authentication state). Nothing
// else of the host process is reachable from a script.
package sandbox

import "context"

// Collection is a named set of documents.
type Collection interface {
	Find(ctx context.Context, query any) ([]any, error)
	FindOne(ctx context.Context, id any) (map[string]any, error)
	Insert(ctx context.Context, doc any) (any, error)
	Update(ctx context.Context, id, doc any) (any, error)
	Delete(ctx context.Context, id any) (bool, error)
}

// DataStore hands out collections by name.
type DataStore interface {
	Collection(name string) Collection
}

// Outbound performs HTTP calls on behalf of a script.
type Outbound interface {
	Get(ctx context.Context, url string) (any, error)
	Post(ctx context.Context, url string, body any) (any, error)
	Put(ctx context.Context, url string, body any) (any, error)
	Delete(ctx context.Context, url string) (any, error)
}

// PubSub registers handlers and publishes events.
type PubSub interface {
	On(event string, handler any) error
	Emit(event string, data any) error
	Broadcast(event string, data any) error
}

// Auth exposes the authentication state of the current request.
type Auth interface {
	User(ctx context.Context) map[string]any
	Login(ctx context.Context, credentials any) (any, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, user any) (any, error)
}

// Capabilities is the complete surface handed to a script. Nil members are
// replaced by the inert defaults.
type Capabilities struct {
	Data     DataStore
	Outbound Outbound
	PubSub   PubSub
	Auth     Auth
}

// DefaultCapabilities returns the inert stubs: an empty in-memory store, a
// real HTTP client, a no-op pub/sub and an anonymous user.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Data:     MemoryStore{},
		Outbound: NewHTTPClient(nil),
		PubSub:   NopPubSub{},
		Auth:     AnonymousAuth{},
	}
}

func (c Capabilities) withDefaults() Capabilities {
	d := DefaultCapabilities()
	if c.Data == nil {
		c.Data = d.Data
	}
	if c.Outbound == nil {
		c.Outbound = d.Outbound
	}
	if c.PubSub == nil {
		c.PubSub = d.PubSub
	}
	if c.Auth == nil {
		c.Auth = d.Auth
	}
	return c
}
