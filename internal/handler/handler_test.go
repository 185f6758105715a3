package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jason-czar/Sportstreams/internal/config"
	"github.com/jason-czar/Sportstreams/internal/handler"
	"github.com/jason-czar/Sportstreams/internal/hub"
	"github.com/jason-czar/Sportstreams/internal/service"
	"github.com/jason-czar/Sportstreams/internal/store/storetest"
	"github.com/jason-czar/Sportstreams/internal/streaming"
	"github.com/jason-czar/Sportstreams/internal/switcher"
	"github.com/jason-czar/Sportstreams/internal/viewers"
)

const testCookieName = "sportstreams_session"

// fakeProvider satisfies service.StreamProvider without network calls.
type fakeProvider struct {
	mu      sync.Mutex
	created int
}

func (p *fakeProvider) CreateLiveStream(ctx context.Context) (*streaming.LiveStream, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created++
	n := p.created
	return &streaming.LiveStream{
		ID:         fmt.Sprintf("ls-%d", n),
		StreamKey:  fmt.Sprintf("sk-%d", n),
		PlaybackID: fmt.Sprintf("pb-%d", n),
	}, nil
}

func (p *fakeProvider) CompleteLiveStream(ctx context.Context, streamID string) error { return nil }

func (p *fakeProvider) CreateSimulcastTarget(ctx context.Context, streamID, url, streamKey string) (*streaming.SimulcastTarget, error) {
	return &streaming.SimulcastTarget{ID: "st-1", URL: url, Status: "idle"}, nil
}

func (p *fakeProvider) DeleteSimulcastTarget(ctx context.Context, streamID, targetID string) error {
	return nil
}

func (p *fakeProvider) PlaybackURL(playbackID string) string {
	return "https://stream.example.com/" + playbackID + ".m3u8"
}

func (p *fakeProvider) IngestURL() string { return "rtmps://ingest.example.com:443/app" }

type testServer struct {
	t        *testing.T
	srv      *httptest.Server
	client   *http.Client
	wsHub    *hub.Hub
	presence viewers.PresenceStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := storetest.New(t)
	provider := &fakeProvider{}

	// WriteWait is short so tests that stall a client see the drop quickly.
	wsCfg := config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      500 * time.Millisecond,
		MaxMessageSize: 4096,
	}
	wsHub := hub.NewHub(wsCfg)
	go wsHub.Run()
	t.Cleanup(wsHub.Shutdown)

	presence := viewers.NewMemoryPresenceStore()
	tracker := viewers.NewTracker(presence, wsHub, wsHub, time.Minute)

	coordinator := switcher.NewCoordinator(st, wsHub, provider.PlaybackURL)

	authCfg := config.AuthConfig{
		SessionTTL: time.Hour,
		CookieName: testCookieName,
	}
	auth := service.NewAuthService(st.Users, st.Sessions, authCfg.SessionTTL)
	events := service.NewEventService(st, provider)
	cameras := service.NewCameraService(st, provider)
	chat := service.NewChatService(st, wsHub)

	session := handler.NewSessionMiddleware(auth, authCfg.CookieName)

	r := gin.New()
	handler.NewAuthHandler(auth, authCfg).RegisterRoutes(r, session)
	handler.NewEventHandler(events, cameras, chat, coordinator).RegisterRoutes(r, session)
	handler.NewWSHandler(wsHub, tracker, wsCfg).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testServer{
		t:        t,
		srv:      srv,
		client:   &http.Client{Jar: jar},
		wsHub:    wsHub,
		presence: presence,
	}
}

// newTestServerClient returns a second client against the same server with
// its own cookie jar, for exercising anonymous or second-user access.
func newTestServerClient(ts *testServer) *testServer {
	ts.t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(ts.t, err)
	return &testServer{
		t:        ts.t,
		srv:      ts.srv,
		client:   &http.Client{Jar: jar},
		wsHub:    ts.wsHub,
		presence: ts.presence,
	}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do sends a JSON request with the server's cookie jar and decodes the
// response envelope.
func (ts *testServer) do(method, path string, body interface{}) (int, apiResponse) {
	ts.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.srv.URL+path, reader)
	require.NoError(ts.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.client.Do(req)
	require.NoError(ts.t, err)
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(ts.t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (ts *testServer) decode(raw json.RawMessage, out interface{}) {
	ts.t.Helper()
	require.NoError(ts.t, json.Unmarshal(raw, out))
}

// register creates an account and logs in, leaving a session cookie in the
// jar.
func (ts *testServer) register(email, username string) {
	ts.t.Helper()

	status, _ := ts.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    email,
		"username": username,
		"password": "hunter2hunter2",
	})
	require.Equal(ts.t, http.StatusCreated, status)

	status, _ = ts.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": "hunter2hunter2",
	})
	require.Equal(ts.t, http.StatusOK, status)
}
