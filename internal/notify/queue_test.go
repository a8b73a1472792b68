package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ganot/taskdeck/internal/notify"
)

func TestPushReplacesVisibleNotification(t *testing.T) {
	q := notify.NewQueue()

	q.Push(notify.KindSuccess, "first")
	q.Push(notify.KindSuccess, "second")

	n := q.Current()
	require.NotNil(t, n)
	require.Equal(t, "second", n.Message)
}

func TestNotificationExpires(t *testing.T) {
	now := time.Now()
	q := notify.NewQueue(notify.WithClock(func() time.Time { return now }))

	q.Push(notify.KindSuccess, "done")
	require.NotNil(t, q.Current())

	now = now.Add(notify.DefaultTTL - time.Millisecond)
	require.NotNil(t, q.Current())

	now = now.Add(2 * time.Millisecond)
	require.Nil(t, q.Current())
	require.Nil(t, q.Current(), "stays cleared")
}

func TestPushResetsExpiry(t *testing.T) {
	now := time.Now()
	q := notify.NewQueue(notify.WithClock(func() time.Time { return now }))

	q.Push(notify.KindSuccess, "first")
	now = now.Add(2 * time.Second)
	q.Push(notify.KindSuccess, "second")

	// The first push would have expired by now; the second restarted the
	// clock.
	now = now.Add(2 * time.Second)
	n := q.Current()
	require.NotNil(t, n)
	require.Equal(t, "second", n.Message)

	now = now.Add(time.Second)
	require.Nil(t, q.Current())
}

func TestOnChangeFires(t *testing.T) {
	var fired int
	q := notify.NewQueue(notify.WithOnChange(func() { fired++ }))

	q.Push(notify.KindInfo, "a")
	q.Push(notify.KindInfo, "b")
	require.Equal(t, 2, fired)
}

func TestClear(t *testing.T) {
	q := notify.NewQueue()
	q.Push(notify.KindSuccess, "x")
	q.Clear()
	require.Nil(t, q.Current())
}
