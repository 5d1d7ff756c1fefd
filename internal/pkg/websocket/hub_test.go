package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func startFeed(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	router := gin.New()
	router.GET("/ws/classes", NewHandler(hub, zerolog.Nop()).HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *gorillaws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/classes" + query
	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestFeedDeliversToClassAndAllTopics(t *testing.T) {
	hub, srv := startFeed(t)
	classID := primitive.NewObjectID().Hex()

	classConn := dial(t, srv, "?classId="+classID)
	allConn := dial(t, srv, "")
	otherConn := dial(t, srv, "?classId="+primitive.NewObjectID().Hex())

	require.Eventually(t, func() bool {
		return hub.ClientCount(classID) == 1 && hub.ClientCount(TopicAll) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.PublishClassEvent(ClassEvent{Type: EventSeats, ClassID: classID, AvailableSeats: 4, TotalEnrolled: 6})

	for _, conn := range []*gorillaws.Conn{classConn, allConn} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var event ClassEvent
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, EventSeats, event.Type)
		assert.Equal(t, classID, event.ClassID)
		assert.Equal(t, 4, event.AvailableSeats)
		assert.False(t, event.Timestamp.IsZero())
	}

	require.NoError(t, otherConn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := otherConn.ReadMessage()
	assert.Error(t, err)
}

func TestFeedRejectsInvalidClassID(t *testing.T) {
	_, srv := startFeed(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/classes?classId=nope"
	_, resp, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestListenerSeesEvents(t *testing.T) {
	hub, _ := startFeed(t)
	events := make(chan *ClassEvent, 1)
	hub.AddListener(events)
	defer hub.RemoveListener(events)

	hub.PublishClassEvent(ClassEvent{Type: EventStatus, ClassID: "abc", Status: "approved"})

	select {
	case event := <-events:
		assert.Equal(t, "approved", event.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not receive event")
	}
}
