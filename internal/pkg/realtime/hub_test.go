package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func recv(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestSubscribe_FiltersByName(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobs := hub.Subscribe(ctx, EventNewJobPosted)
	all := hub.Subscribe(ctx)

	hub.Publish(Event{Name: EventNewMessage})
	hub.Publish(Event{Name: EventNewJobPosted, Data: "j1"})

	assert.Equal(t, EventNewMessage, recv(t, all).Name)
	assert.Equal(t, EventNewJobPosted, recv(t, all).Name)

	got := recv(t, jobs)
	assert.Equal(t, "j1", got.Data)
	assert.False(t, got.Timestamp.IsZero())
}

func TestSubscribe_ClosedOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	ch := hub.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not closed")
	}

	// publishing after teardown must not panic or deliver
	hub.Publish(Event{Name: EventAuditLog})
}

func TestRun_StopsOnCancelAndClosesSubscriptions(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	ch := hub.Subscribe(context.Background())
	cancel()
	<-stopped

	_, ok := <-ch
	assert.False(t, ok)

	late := hub.Subscribe(context.Background())
	_, ok = <-late
	assert.False(t, ok, "subscribing to a stopped hub yields a closed channel")

	hub.Publish(Event{Name: EventNewMessage})
}

func TestEvent_Routing(t *testing.T) {
	e := Event{Name: EventTaskAssigned}
	assert.True(t, e.deliversTo("u1", "STUDENT"))
	assert.True(t, e.ToRole("ADMIN").deliversTo("u1", "ADMIN"))
	assert.False(t, e.ToRole("ADMIN").deliversTo("u1", "ALUMNI"))
	assert.True(t, e.ToUser("u2").deliversTo("u2", "ALUMNI"))
	assert.False(t, e.ToUser("u2").deliversTo("u1", "ALUMNI"))
}

func dialAs(t *testing.T, srv *httptest.Server, userID, role string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?user=" + userID + "&role=" + role
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestHandler_DeliversRoutedEvents(t *testing.T) {
	defer goleak.VerifyNone(t)
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		// stands in for the JWT middleware
		c.Set("userID", c.Query("user"))
		c.Set("roleType", c.Query("role"))
	}, NewHandler(hub, nil, 8, zerolog.Nop()).HandleConnection)
	srv := httptest.NewServer(r)

	admin := dialAs(t, srv, "a1", "ADMIN")
	student := dialAs(t, srv, "s1", "STUDENT")
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, hub.Online("s1"))

	hub.Publish(Event{Name: EventAuditLog}.ToRole("ADMIN"))
	hub.Publish(Event{Name: EventNewMessage, Data: map[string]string{"id": "m1"}}.ToUser("s1"))

	assert.Equal(t, EventAuditLog, readEvent(t, admin)["event"])
	got := readEvent(t, student)
	assert.Equal(t, EventNewMessage, got["event"])
	assert.Equal(t, "m1", got["data"].(map[string]any)["id"])

	require.NoError(t, student.WriteJSON(map[string]string{"type": "authenticate", "userId": "s1", "role": "student"}))
	assert.Equal(t, eventAuthenticated, readEvent(t, student)["event"])

	require.NoError(t, admin.WriteJSON(map[string]string{"type": "authenticate", "userId": "someone-else"}))
	assert.Equal(t, eventAuthError, readEvent(t, admin)["event"])
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-stopped
	admin.Close()
	student.Close()
	srv.Close()
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"app.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(req), "non-browser clients send no origin")

	req.Header.Set("Origin", "https://app.example.com")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(req))

	assert.True(t, originChecker(nil)(req))
}
