package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jason-czar/Sportstreams/internal/domain"
)

func (ts *testServer) createEvent(name string) domain.Event {
	ts.t.Helper()
	status, resp := ts.do(http.MethodPost, "/api/v1/events", map[string]string{"name": name})
	require.Equal(ts.t, http.StatusCreated, status)
	var event domain.Event
	ts.decode(resp.Data, &event)
	return event
}

func (ts *testServer) registerCamera(eventID, label string) domain.Camera {
	ts.t.Helper()
	status, resp := ts.do(http.MethodPost, "/api/v1/events/"+eventID+"/cameras", map[string]string{
		"label":         label,
		"operator_name": "op",
	})
	require.Equal(ts.t, http.StatusCreated, status)
	var created struct {
		Camera domain.Camera `json:"camera"`
	}
	ts.decode(resp.Data, &created)
	return created.Camera
}

func TestEventEndpointsRequireSession(t *testing.T) {
	ts := newTestServer(t)

	status, _ := ts.do(http.MethodPost, "/api/v1/events", map[string]string{"name": "Match"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = ts.do(http.MethodPost, "/api/v1/events/some-id/switch", map[string]string{"camera_id": "cam"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCreateAndFetchEvent(t *testing.T) {
	ts := newTestServer(t)
	ts.register("director@example.com", "director")

	event := ts.createEvent("Saturday Final")
	assert.Equal(t, "idle", string(event.Status))
	assert.Len(t, event.JoinCode, 6)

	// Detail is readable without a session.
	anon := newTestServerClient(ts)
	status, resp := anon.do(http.MethodGet, "/api/v1/events/"+event.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var detail struct {
		Event       domain.Event `json:"event"`
		PlaybackURL string       `json:"playback_url"`
	}
	anon.decode(resp.Data, &detail)
	assert.Equal(t, event.ID, detail.Event.ID)
	assert.Equal(t, "https://stream.example.com/pb-1.m3u8", detail.PlaybackURL)

	status, resp = anon.do(http.MethodGet, "/api/v1/join/"+event.JoinCode, nil)
	require.Equal(t, http.StatusOK, status)
	var byCode domain.Event
	anon.decode(resp.Data, &byCode)
	assert.Equal(t, event.ID, byCode.ID)

	status, _ = anon.do(http.MethodGet, "/api/v1/events/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestEventLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ts.register("director@example.com", "director")

	event := ts.createEvent("Match")

	status, _ := ts.do(http.MethodPost, "/api/v1/events/"+event.ID+"/stop", nil)
	assert.Equal(t, http.StatusConflict, status, "idle events cannot be stopped")

	status, resp := ts.do(http.MethodPost, "/api/v1/events/"+event.ID+"/start", nil)
	require.Equal(t, http.StatusOK, status)
	var live domain.Event
	ts.decode(resp.Data, &live)
	assert.Equal(t, "live", string(live.Status))

	status, _ = ts.do(http.MethodPost, "/api/v1/events/"+event.ID+"/start", nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = ts.do(http.MethodPost, "/api/v1/events/"+event.ID+"/stop", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestOwnershipIsEnforced(t *testing.T) {
	ts := newTestServer(t)
	ts.register("owner@example.com", "owner")
	event := ts.createEvent("Match")

	other := newTestServerClient(ts)
	other.register("intruder@example.com", "intruder")

	status, resp := other.do(http.MethodPost, "/api/v1/events/"+event.ID+"/start", nil)
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	status, _ = other.do(http.MethodPost, "/api/v1/events/"+event.ID+"/switch", map[string]string{
		"camera_id": "cam-1",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestSwitchCameraOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ts.register("director@example.com", "director")

	event := ts.createEvent("Match")
	camera := ts.registerCamera(event.ID, "Sideline")

	status, resp := ts.do(http.MethodPost, "/api/v1/events/"+event.ID+"/switch", map[string]string{
		"camera_id": camera.ID,
	})
	require.Equal(t, http.StatusOK, status)
	var result struct {
		ActiveCameraID string `json:"active_camera_id"`
	}
	ts.decode(resp.Data, &result)
	assert.Equal(t, camera.ID, result.ActiveCameraID)

	// The switch is visible on the event detail.
	status, resp = ts.do(http.MethodGet, "/api/v1/events/"+event.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var detail struct {
		Event domain.Event `json:"event"`
	}
	ts.decode(resp.Data, &detail)
	require.NotNil(t, detail.Event.ActiveCameraID)
	assert.Equal(t, camera.ID, *detail.Event.ActiveCameraID)
}

func TestSwitchLogOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ts.register("director@example.com", "director")

	event := ts.createEvent("Match")
	sideline := ts.registerCamera(event.ID, "Sideline")
	goal := ts.registerCamera(event.ID, "Goal")

	for _, cam := range []domain.Camera{sideline, goal} {
		status, _ := ts.do(http.MethodPost, "/api/v1/events/"+event.ID+"/switch", map[string]string{
			"camera_id": cam.ID,
		})
		require.Equal(t, http.StatusOK, status)
	}

	status, resp := ts.do(http.MethodGet, "/api/v1/events/"+event.ID+"/switch-log", nil)
	require.Equal(t, http.StatusOK, status)
	var entries []domain.SwitchLog
	ts.decode(resp.Data, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, sideline.ID, entries[0].CameraID)
	assert.Equal(t, goal.ID, entries[1].CameraID)

	other := newTestServerClient(ts)
	other.register("intruder@example.com", "intruder")
	status, _ = other.do(http.MethodGet, "/api/v1/events/"+event.ID+"/switch-log", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestSwitchToForeignCameraIsRejected(t *testing.T) {
	ts := newTestServer(t)
	ts.register("director@example.com", "director")

	event := ts.createEvent("Match")
	other := ts.createEvent("Other")
	foreign := ts.registerCamera(other.ID, "Elsewhere")

	status, resp := ts.do(http.MethodPost, "/api/v1/events/"+event.ID+"/switch", map[string]string{
		"camera_id": foreign.ID,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)

	status, _ = ts.do(http.MethodPost, "/api/v1/events/"+event.ID+"/switch", map[string]string{
		"camera_id": "no-such-camera",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCameraRegistrationAndLiveness(t *testing.T) {
	ts := newTestServer(t)
	ts.register("director@example.com", "director")
	event := ts.createEvent("Match")

	// Operators register without a session.
	anon := newTestServerClient(ts)
	status, resp := anon.do(http.MethodPost, "/api/v1/events/"+event.ID+"/cameras", map[string]string{
		"label":         "Goal Line",
		"operator_name": "Sam",
	})
	require.Equal(t, http.StatusCreated, status)
	var created struct {
		Camera    domain.Camera `json:"camera"`
		StreamKey string        `json:"stream_key"`
		IngestURL string        `json:"ingest_url"`
	}
	anon.decode(resp.Data, &created)
	assert.NotEmpty(t, created.StreamKey)
	assert.NotEmpty(t, created.IngestURL)

	status, _ = anon.do(http.MethodPost, "/api/v1/cameras/"+created.Camera.ID+"/live", map[string]bool{
		"is_live": true,
	})
	require.Equal(t, http.StatusOK, status)

	status, resp = anon.do(http.MethodGet, "/api/v1/events/"+event.ID+"/cameras", nil)
	require.Equal(t, http.StatusOK, status)
	var cameras []domain.Camera
	anon.decode(resp.Data, &cameras)
	require.Len(t, cameras, 1)
	assert.True(t, cameras[0].IsLive)
}

func TestSimulcastEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.register("director@example.com", "director")
	event := ts.createEvent("Match")

	status, resp := ts.do(http.MethodPost, "/api/v1/events/"+event.ID+"/simulcast", map[string]string{
		"platform":   "youtube",
		"url":        "rtmp://a.rtmp.youtube.com/live2",
		"stream_key": "yt-key",
	})
	require.Equal(t, http.StatusCreated, status)
	var target domain.SimulcastTarget
	ts.decode(resp.Data, &target)
	assert.Equal(t, "youtube", target.Platform)

	status, _ = ts.do(http.MethodDelete, "/api/v1/events/"+event.ID+"/simulcast/"+target.ID, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestChatEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.register("director@example.com", "director")
	event := ts.createEvent("Match")

	anon := newTestServerClient(ts)
	status, resp := anon.do(http.MethodPost, "/api/v1/events/"+event.ID+"/chat", map[string]string{
		"display_name": "Visitor",
		"body":         "hello from the stands",
	})
	require.Equal(t, http.StatusCreated, status)
	var msg domain.ChatMessage
	anon.decode(resp.Data, &msg)
	assert.Equal(t, "Visitor", msg.DisplayName)

	// A logged-in poster falls back to their username.
	status, resp = ts.do(http.MethodPost, "/api/v1/events/"+event.ID+"/chat", map[string]string{
		"body": "hello from the booth",
	})
	require.Equal(t, http.StatusCreated, status)
	ts.decode(resp.Data, &msg)
	assert.Equal(t, "director", msg.DisplayName)

	status, resp = anon.do(http.MethodGet, "/api/v1/events/"+event.ID+"/chat", nil)
	require.Equal(t, http.StatusOK, status)
	var history []domain.ChatMessage
	anon.decode(resp.Data, &history)
	require.Len(t, history, 2)
	assert.Equal(t, "hello from the stands", history[0].Body)

	status, _ = anon.do(http.MethodGet, "/api/v1/events/"+event.ID+"/chat?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = anon.do(http.MethodPost, "/api/v1/events/"+event.ID+"/chat", map[string]string{
		"body": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}
