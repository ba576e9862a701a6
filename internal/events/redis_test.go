package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	m := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	return m, rc
}

func TestRedisPublisher_HandleEvent(t *testing.T) {
	_, rc := newTestRedis(t)
	ctx := context.Background()

	sub := rc.Subscribe(ctx, "kanban:events")
	defer func() { _ = sub.Close() }()
	_, err := sub.Receive(ctx)
	require.NoError(t, err, "subscription must be confirmed before publishing")
	messages := sub.Channel()

	publisher := NewRedisPublisher(rc, "kanban:events", nil)
	event, err := NewBoardEvent(ColumnRenamed, 4, 0, map[string]string{"name": "Doing"})
	require.NoError(t, err)

	require.NoError(t, publisher.HandleEvent(ctx, event))

	select {
	case msg := <-messages:
		assert.Equal(t, "kanban:events", msg.Channel)
		var got BoardEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, ColumnRenamed, got.Type)
		assert.Equal(t, int64(4), got.ColumnID)
		assert.JSONEq(t, `{"name":"Doing"}`, string(got.Payload))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published event")
	}
}

func TestRedisPublisher_NoSubscribers(t *testing.T) {
	_, rc := newTestRedis(t)

	publisher := NewRedisPublisher(rc, "kanban:events", nil)
	event, err := NewBoardEvent(TaskDeleted, 0, 3, nil)
	require.NoError(t, err)

	assert.NoError(t, publisher.HandleEvent(context.Background(), event))
}

func TestRedisPublisher_ServerDown(t *testing.T) {
	m, rc := newTestRedis(t)
	m.Close()

	publisher := NewRedisPublisher(rc, "kanban:events", nil)
	event, err := NewBoardEvent(ColumnCreated, 1, 0, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, publisher.HandleEvent(ctx, event))
}

func TestSubscribe(t *testing.T) {
	_, rc := newTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *BoardEvent, 1)
	done := make(chan error, 1)
	go func() {
		done <- Subscribe(ctx, rc, "kanban:events", nil, func(e *BoardEvent) {
			select {
			case received <- e:
			default:
			}
		})
	}()

	publisher := NewRedisPublisher(rc, "kanban:events", nil)
	event, err := NewBoardEvent(TaskCreated, 1, 2, nil)
	require.NoError(t, err)

	// Publish until the subscription is live.
	require.Eventually(t, func() bool {
		_ = rc.Publish(ctx, "kanban:events", "not json").Err()
		if err := publisher.HandleEvent(ctx, event); err != nil {
			return false
		}
		select {
		case got := <-received:
			return got.ID == event.ID
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Subscribe did not return after cancel")
	}
}

func TestNewRedisClient(t *testing.T) {
	rc, err := NewRedisClient("redis://localhost:6379/2")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", rc.Options().Addr)
	assert.Equal(t, 2, rc.Options().DB)
	_ = rc.Close()

	rc, err = NewRedisClient("localhost:6380")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", rc.Options().Addr)
	_ = rc.Close()

	_, err = NewRedisClient("http://[::1")
	assert.Error(t, err)
}
