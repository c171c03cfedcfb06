package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronova/internal/infrastructure/ratelimit"
	ws "chronova/internal/infrastructure/websocket"
	"chronova/internal/usecase"
)

func dialLive(t *testing.T, catalog *stubCatalog, limiter *ratelimit.RateLimiter) *gorillaws.Conn {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	manager := ws.NewManager()
	manager.Start(ctx)

	live := NewLiveCollectionHandler(usecase.NewCollectionUseCase(catalog), manager, limiter)
	e := echo.New()
	e.GET("/v1/collection/live", live.Connect)

	srv := httptest.NewServer(e)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/collection/live"

	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		srv.Close()
	})
	return conn
}

func readFrame(t *testing.T, conn *gorillaws.Conn) ws.WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg ws.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func readView(t *testing.T, conn *gorillaws.Conn) usecase.CollectionView {
	t.Helper()
	msg := readFrame(t, conn)
	require.Equal(t, ws.MessageTypeView, msg.Type)
	return decodeView(t, msg.Data)
}

func send(t *testing.T, conn *gorillaws.Conn, frame string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(gorillaws.TextMessage, []byte(frame)))
}

func TestLiveCollection_LoadsThenFilters(t *testing.T) {
	conn := dialLive(t, newStubCatalog(), ratelimit.NewRateLimiter(ratelimit.PerMinute(100)))

	loading := readView(t, conn)
	assert.True(t, loading.Loading)
	assert.False(t, loading.Empty)

	catalogFrame := readFrame(t, conn)
	require.Equal(t, ws.MessageTypeCatalog, catalogFrame.Type)
	var data catalogData
	require.NoError(t, json.Unmarshal(catalogFrame.Data, &data))
	assert.Len(t, data.Categories, 2)
	assert.Len(t, data.Brands, 1)

	loaded := readView(t, conn)
	assert.False(t, loaded.Loading)
	assert.Equal(t, []string{"3", "2", "1"}, viewIDs(loaded))

	send(t, conn, `{"type":"set_filter","data":{"brand":"7","sort":"price-asc"}}`)
	filtered := readView(t, conn)
	assert.Equal(t, []string{"2", "1"}, viewIDs(filtered))
	assert.Equal(t, 2, filtered.Count)

	send(t, conn, `{"type":"set_filter","data":{"category":"2","brand":"8"}}`)
	assert.True(t, readView(t, conn).Empty)

	send(t, conn, `{"type":"clear"}`)
	cleared := readView(t, conn)
	assert.Equal(t, []string{"3", "2", "1"}, viewIDs(cleared))
	assert.True(t, cleared.Filters.IsDefault())
}

func TestLiveCollection_PingAndBadFrames(t *testing.T) {
	conn := dialLive(t, newStubCatalog(), ratelimit.NewRateLimiter(ratelimit.PerMinute(100)))
	readView(t, conn)
	readFrame(t, conn)
	readView(t, conn)

	send(t, conn, `{"type":"ping"}`)
	assert.Equal(t, ws.MessageTypePong, readFrame(t, conn).Type)

	send(t, conn, `{"type":"checkout"}`)
	msg := readFrame(t, conn)
	require.Equal(t, ws.MessageTypeError, msg.Type)
	assert.Contains(t, string(msg.Data), "checkout")

	send(t, conn, `not json`)
	assert.Equal(t, ws.MessageTypeError, readFrame(t, conn).Type)

	send(t, conn, `{"type":"set_filter","data":{"min_price":100}}`)
	assert.Equal(t, ws.MessageTypeError, readFrame(t, conn).Type)
}

func TestLiveCollection_LoadFailure(t *testing.T) {
	catalog := newStubCatalog()
	catalog.err = stderrors.New("refused")
	conn := dialLive(t, catalog, ratelimit.NewRateLimiter(ratelimit.PerMinute(100)))

	assert.True(t, readView(t, conn).Loading)

	msg := readFrame(t, conn)
	require.Equal(t, ws.MessageTypeError, msg.Type)

	failed := readView(t, conn)
	assert.True(t, failed.LoadFailed)
	assert.False(t, failed.Empty)
}

func TestLiveCollection_MessagesAreRateLimited(t *testing.T) {
	limiter := ratelimit.NewRateLimiter(ratelimit.PerMinute(100))
	limiter.SetPolicy(ActionLiveMessage, ratelimit.PerMinute(1))
	conn := dialLive(t, newStubCatalog(), limiter)
	readView(t, conn)
	readFrame(t, conn)
	readView(t, conn)

	send(t, conn, `{"type":"clear"}`)
	assert.Equal(t, ws.MessageTypeView, readFrame(t, conn).Type)

	send(t, conn, `{"type":"clear"}`)
	msg := readFrame(t, conn)
	require.Equal(t, ws.MessageTypeError, msg.Type)
	assert.Contains(t, string(msg.Data), "Too many requests")
}
