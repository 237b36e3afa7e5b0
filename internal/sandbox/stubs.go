package sandbox

import "context"

// MemoryStore is a data store whose collections hold nothing. Reads return
// empty results and writes echo their input.
type MemoryStore struct{}

func (MemoryStore) Collection(string) Collection { return emptyCollection{} }

type emptyCollection struct{}

func (emptyCollection) Find(context.Context, any) ([]any, error) { return []any{}, nil }

func (emptyCollection) FindOne(context.Context, any) (map[string]any, error) {
	return map[string]any{}, nil
}

func (emptyCollection) Insert(_ context.Context, doc any) (any, error) { return doc, nil }

func (emptyCollection) Update(_ context.Context, _, doc any) (any, error) { return doc, nil }

func (emptyCollection) Delete(context.Context, any) (bool, error) { return true, nil }

// NopPubSub accepts every registration and event and does nothing.
type NopPubSub struct{}

func (NopPubSub) On(string, any) error        { return nil }
func (NopPubSub) Emit(string, any) error      { return nil }
func (NopPubSub) Broadcast(string, any) error { return nil }

// AnonymousAuth reports an unauthenticated user. Login, logout and register
// succeed without effect.
type AnonymousAuth struct{}

func (AnonymousAuth) User(context.Context) map[string]any {
	return map[string]any{
		"isAuthenticated": false,
		"id":              nil,
		"roles":           []any{},
	}
}

func (AnonymousAuth) Login(context.Context, any) (any, error)    { return nil, nil }
func (AnonymousAuth) Logout(context.Context) error               { return nil }
func (AnonymousAuth) Register(context.Context, any) (any, error) { return nil, nil }
