package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name  string
		logic string
		want  []statement
	}{
		{
			name:  "declarations",
			logic: "const a = 1;\nlet b = 'x'\nvar c",
			want: []statement{
				{kind: stmtDeclare, target: "a", expr: "1", line: 1},
				{kind: stmtDeclare, target: "b", expr: "'x'", line: 2},
				{kind: stmtDeclare, target: "c", line: 3},
			},
		},
		{
			name:  "assignment, export and expression",
			logic: "a = b == c; exports.title = 'T'; socket.emit('x')",
			want: []statement{
				{kind: stmtAssign, target: "a", expr: "b == c", line: 1},
				{kind: stmtExport, target: "title", expr: "'T'", line: 1},
				{kind: stmtExpr, expr: "socket.emit('x')", line: 1},
			},
		},
		{
			name:  "javascript spellings",
			logic: "const ok = await check(null === undefined, a !== b)",
			want: []statement{
				{kind: stmtDeclare, target: "ok", expr: "check(nil == nil, a != b)", line: 1},
			},
		},
		{
			name:  "brackets span lines",
			logic: "const m = {\n  a: 1,\n  b: [2, 3]\n}",
			want: []statement{
				{kind: stmtDeclare, target: "m", expr: "{   a: 1,   b: [2, 3] }", line: 1},
			},
		},
		{
			name:  "member chains continue on the next line",
			logic: "const posts = db\n  .collection('posts')\n  .find()\nconst n = 1",
			want: []statement{
				{kind: stmtDeclare, target: "posts", expr: "db  .collection('posts')  .find()", line: 1},
				{kind: stmtDeclare, target: "n", expr: "1", line: 4},
			},
		},
		{
			name:  "comments are dropped",
			logic: "// const hidden = 1\n/* const also = 2; */\nconst shown = \"// not a comment\"",
			want: []statement{
				{kind: stmtDeclare, target: "shown", expr: `"// not a comment"`, line: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitStatements(tt.logic)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitStatements_Errors(t *testing.T) {
	for _, logic := range []string{
		"const = 5",
		"let x =",
		"const { a } = obj",
		"const m = (1",
	} {
		t.Run(logic, func(t *testing.T) {
			_, err := splitStatements(logic)
			assert.Error(t, err)
		})
	}
}

func TestRun_Bindings(t *testing.T) {
	sb := New(Capabilities{})

	got, err := sb.Run(context.Background(), `
const message = "Merhaba";
let count = 1
count = count + 1
const total = count * 10
const items = [1, 2, 3]
const size = items.length
const same = null === undefined
const posts = await db.collection("posts").find()
const user = auth.user
const signedIn = auth.user.isAuthenticated
let later
exports.message = "exported"
`)
	require.NoError(t, err)

	assert.Equal(t, Bindings{
		"message":  "exported",
		"count":    2,
		"total":    20,
		"items":    []any{1, 2, 3},
		"size":     3,
		"same":     true,
		"posts":    []any{},
		"user":     map[string]any{"isAuthenticated": false, "id": nil, "roles": []any{}},
		"signedIn": false,
		"later":    nil,
	}, got)
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name  string
		logic string
	}{
		{"unknown identifier", "const x = missing + 1"},
		{"unsupported statement", "const { a } = b"},
		{"runtime error", "const a = 1\nconst b = a.c.d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(Capabilities{}).Run(context.Background(), tt.logic)
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}

type blockingOutbound struct {
	Outbound
	release chan struct{}
}

func (b blockingOutbound) Get(context.Context, string) (any, error) {
	<-b.release
	return nil, nil
}

func TestRun_Timeout(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	sb := New(Capabilities{Outbound: blockingOutbound{release: release}}, WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := sb.Run(context.Background(), `const r = api.get("http://example.invalid")`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestEvaluate_FailsOpen(t *testing.T) {
	var logs bytes.Buffer
	sb := New(Capabilities{}, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	got := sb.Evaluate(context.Background(), "const a = 1\nthrow(a)")
	assert.Equal(t, Bindings{}, got)
	assert.Contains(t, logs.String(), "page logic failed")

	assert.Equal(t, Bindings{}, sb.Evaluate(context.Background(), ""))
}

type recordingStore struct {
	names   []string
	queries []any
}

func (r *recordingStore) Collection(name string) Collection {
	r.names = append(r.names, name)
	return recordingCollection{store: r}
}

type recordingCollection struct {
	emptyCollection
	store *recordingStore
}

func (c recordingCollection) Find(_ context.Context, query any) ([]any, error) {
	c.store.queries = append(c.store.queries, query)
	return []any{map[string]any{"title": "First"}}, nil
}

type recordingPubSub struct {
	NopPubSub
	events []string
}

func (p *recordingPubSub) Emit(event string, data any) error {
	p.events = append(p.events, fmt.Sprintf("emit %s %v", event, data))
	return nil
}

func (p *recordingPubSub) Broadcast(event string, data any) error {
	p.events = append(p.events, fmt.Sprintf("broadcast %s %v", event, data))
	return nil
}

func TestRun_InjectedCapabilities(t *testing.T) {
	store := &recordingStore{}
	pubsub := &recordingPubSub{}
	sb := New(Capabilities{Data: store, PubSub: pubsub})

	got, err := sb.Run(context.Background(), `
const posts = db.collection("posts").find({published: true})
const first = posts[0].title
socket.emit("loaded", 1)
socket.broadcast.emit("loaded", 2)
`)
	require.NoError(t, err)

	assert.Equal(t, "First", got["first"])
	assert.Equal(t, []string{"posts"}, store.names)
	assert.Equal(t, []any{map[string]any{"published": true}}, store.queries)
	assert.Equal(t, []string{"emit loaded 1", "broadcast loaded 2"}, pubsub.events)
}

func TestRun_HTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"Ana"}`))
		case http.MethodPost:
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"echo": body["name"]})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("nope"))
		}
	}))
	defer srv.Close()

	sb := New(Capabilities{Outbound: NewHTTPClient(srv.Client())})
	got, err := sb.Run(context.Background(), fmt.Sprintf(`
const res = api.get("%[1]s/user")
const name = res.body.name
const created = api.post("%[1]s/user", {name: "Bo"})
const missing = api.delete("%[1]s/user")
`, srv.URL))
	require.NoError(t, err)

	assert.Equal(t, "Ana", got["name"])

	created := got["created"].(map[string]any)
	assert.Equal(t, http.StatusCreated, created["status"])
	assert.Equal(t, true, created["ok"])
	assert.Equal(t, map[string]any{"echo": "Bo"}, created["body"])

	missing := got["missing"].(map[string]any)
	assert.Equal(t, false, missing["ok"])
	assert.Equal(t, "nope", missing["body"])
}
