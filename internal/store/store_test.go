package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jason-czar/Sportstreams/internal/domain"
	"github.com/jason-czar/Sportstreams/internal/store/storetest"
)

func TestEventStoreRoundTrip(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()

	event := &domain.Event{
		ID:         "evt-1",
		Name:       "Championship Final",
		OwnerID:    "user-1",
		JoinCode:   "ABC234",
		Status:     domain.EventStatusIdle,
		StreamID:   "stream-1",
		StreamKey:  "key-1",
		PlaybackID: "pb-1",
	}
	require.NoError(t, st.Events.Create(ctx, event))

	got, err := st.Events.Get(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, "Championship Final", got.Name)
	assert.Equal(t, domain.EventStatusIdle, got.Status)
	assert.Nil(t, got.ActiveCameraID)

	byCode, err := st.Events.GetByJoinCode(ctx, "ABC234")
	require.NoError(t, err)
	assert.Equal(t, "evt-1", byCode.ID)

	_, err = st.Events.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = st.Events.GetByJoinCode(ctx, "ZZZZZZ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventStoreSetStatus(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()

	require.NoError(t, st.Events.Create(ctx, &domain.Event{
		ID: "evt-1", Name: "e", JoinCode: "AAAAAA", Status: domain.EventStatusIdle,
	}))

	require.NoError(t, st.Events.SetStatus(ctx, "evt-1", domain.EventStatusLive))

	got, err := st.Events.Get(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusLive, got.Status)

	assert.ErrorIs(t, st.Events.SetStatus(ctx, "missing", domain.EventStatusLive), domain.ErrNotFound)
}

func TestCameraStoreSetLive(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()

	require.NoError(t, st.Cameras.Create(ctx, &domain.Camera{
		ID: "cam-1", EventID: "evt-1", Label: "North goal",
	}))

	require.NoError(t, st.Cameras.SetLive(ctx, "cam-1", true))

	got, err := st.Cameras.Get(ctx, "cam-1")
	require.NoError(t, err)
	assert.True(t, got.IsLive)

	assert.ErrorIs(t, st.Cameras.SetLive(ctx, "missing", true), domain.ErrNotFound)
}

func TestCameraStoreListByEvent(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()

	require.NoError(t, st.Cameras.Create(ctx, &domain.Camera{ID: "cam-1", EventID: "evt-1"}))
	require.NoError(t, st.Cameras.Create(ctx, &domain.Camera{ID: "cam-2", EventID: "evt-1"}))
	require.NoError(t, st.Cameras.Create(ctx, &domain.Camera{ID: "cam-3", EventID: "evt-2"}))

	cameras, err := st.Cameras.ListByEvent(ctx, "evt-1")
	require.NoError(t, err)
	assert.Len(t, cameras, 2)
}

func TestRecordSwitchPersistsLogAndActiveCamera(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()

	require.NoError(t, st.Events.Create(ctx, &domain.Event{
		ID: "evt-1", Name: "e", JoinCode: "AAAAAA",
	}))
	require.NoError(t, st.Cameras.Create(ctx, &domain.Camera{ID: "cam-1", EventID: "evt-1"}))

	require.NoError(t, st.RecordSwitch(ctx, "evt-1", "cam-1"))

	event, err := st.Events.Get(ctx, "evt-1")
	require.NoError(t, err)
	require.NotNil(t, event.ActiveCameraID)
	assert.Equal(t, "cam-1", *event.ActiveCameraID)

	count, err := st.Switches.CountByEvent(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Switch trail is append-only and ordered.
	require.NoError(t, st.RecordSwitch(ctx, "evt-1", "cam-1"))
	entries, err := st.Switches.ListByEvent(ctx, "evt-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Less(t, entries[0].ID, entries[1].ID)
}

func TestSessionStoreExpiry(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, st.Sessions.Create(ctx, &domain.Session{
		Token: "live-token", UserID: "user-1", ExpiresAt: now.Add(time.Hour),
	}))
	require.NoError(t, st.Sessions.Create(ctx, &domain.Session{
		Token: "stale-token", UserID: "user-1", ExpiresAt: now.Add(-time.Hour),
	}))

	require.NoError(t, st.Sessions.DeleteExpired(ctx, now))

	_, err := st.Sessions.Get(ctx, "live-token")
	assert.NoError(t, err)

	_, err = st.Sessions.Get(ctx, "stale-token")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChatStoreReturnsRecentInDisplayOrder(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Minute)
	for i, id := range []string{"m1", "m2", "m3"} {
		require.NoError(t, st.Chat.Create(ctx, &domain.ChatMessage{
			ID:        id,
			EventID:   "evt-1",
			Body:      id,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	messages, err := st.Chat.ListByEvent(ctx, "evt-1", 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "m2", messages[0].ID)
	assert.Equal(t, "m3", messages[1].ID)
}

func TestSimulcastStoreLifecycle(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()

	target := &domain.SimulcastTarget{
		ID:         "tgt-1",
		EventID:    "evt-1",
		Platform:   "youtube",
		URL:        "rtmp://a.rtmp.youtube.com/live2",
		ExternalID: "ext-1",
		Status:     domain.SimulcastStatusIdle,
	}
	require.NoError(t, st.Simulcast.Create(ctx, target))

	got, err := st.Simulcast.Get(ctx, "tgt-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SimulcastStatusIdle, got.Status)
	assert.Equal(t, "ext-1", got.ExternalID)

	require.NoError(t, st.Simulcast.Delete(ctx, "tgt-1"))
	_, err = st.Simulcast.Get(ctx, "tgt-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, st.Simulcast.Delete(ctx, "tgt-1"), domain.ErrNotFound)
}
