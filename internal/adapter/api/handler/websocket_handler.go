package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"chronova/internal/adapter/api"
	"chronova/internal/domain/entity"
	"chronova/internal/infrastructure/ratelimit"
	ws "chronova/internal/infrastructure/websocket"
	"chronova/internal/usecase"
	"chronova/pkg/logger"
)

const (
	ActionLiveConnect = "live_connect"
	ActionLiveMessage = "live_message"

	catalogLoadTimeout = 30 * time.Second
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type catalogData struct {
	Categories []*entity.Category `json:"categories"`
	Brands     []*entity.Brand    `json:"brands"`
}

// LiveCollectionHandler serves a collection page over a websocket: the
// server keeps the shopper's filters and pushes a new view after every change.
type LiveCollectionHandler struct {
	collectionUseCase *usecase.CollectionUseCase
	wsManager         *ws.Manager
	limiter           *ratelimit.RateLimiter
	validator         *api.Validator
}

func NewLiveCollectionHandler(
	collectionUseCase *usecase.CollectionUseCase,
	wsManager *ws.Manager,
	limiter *ratelimit.RateLimiter,
) *LiveCollectionHandler {
	return &LiveCollectionHandler{
		collectionUseCase: collectionUseCase,
		wsManager:         wsManager,
		limiter:           limiter,
		validator:         api.NewValidator(),
	}
}

func (h *LiveCollectionHandler) Connect(c echo.Context) error {
	ip := c.RealIP()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already answered the request
		logger.Warn("Live collection upgrade failed for %s: %v", ip, err)
		return nil
	}

	client := ws.NewClient(uuid.NewString(), conn)
	if !h.wsManager.Add(client) {
		conn.Close()
		return nil
	}

	session := usecase.NewCollectionSession()
	ctx, cancel := context.WithCancel(context.Background())

	go client.WritePump()
	h.push(client, ws.MessageTypeView, session.View())

	go h.load(ctx, client, session)
	go func() {
		defer cancel()
		client.ReadPump(h.wsManager, func(cl *ws.Client, raw []byte) {
			h.handleMessage(ip, cl, session, raw)
		})
	}()

	return nil
}

func (h *LiveCollectionHandler) load(ctx context.Context, client *ws.Client, session *usecase.CollectionSession) {
	ctx, cancel := context.WithTimeout(ctx, catalogLoadTimeout)
	defer cancel()

	view, err := session.Load(ctx, h.collectionUseCase)
	if err != nil {
		h.pushError(client, "Failed to load products")
		h.push(client, ws.MessageTypeView, view)
		return
	}

	snapshot := session.Catalog()
	h.push(client, ws.MessageTypeCatalog, catalogData{
		Categories: snapshot.Categories,
		Brands:     snapshot.Brands,
	})
	h.push(client, ws.MessageTypeView, view)
}

func (h *LiveCollectionHandler) handleMessage(ip string, client *ws.Client, session *usecase.CollectionSession, raw []byte) {
	if allowed, _ := h.limiter.Allow(ip, ActionLiveMessage); !allowed {
		h.pushError(client, "Too many requests, please slow down")
		return
	}

	msg, err := ws.ParseMessage(raw)
	if err != nil {
		h.pushError(client, "Invalid message format")
		return
	}

	switch msg.Type {
	case ws.MessageTypeSetFilter:
		var input entity.FilterInput
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &input); err != nil {
				h.pushError(client, "Invalid filter payload")
				return
			}
		}
		if err := h.validator.Validate(&input); err != nil {
			h.pushError(client, "Invalid filter payload")
			return
		}
		h.push(client, ws.MessageTypeView, session.SetFilters(input))

	case ws.MessageTypeClear:
		h.push(client, ws.MessageTypeView, session.Clear())

	case ws.MessageTypePing:
		h.push(client, ws.MessageTypePong, nil)

	default:
		h.pushError(client, "Unknown message type: "+msg.Type)
	}
}

func (h *LiveCollectionHandler) pushError(client *ws.Client, message string) {
	h.push(client, ws.MessageTypeError, ws.ErrorData{Message: message})
}

func (h *LiveCollectionHandler) push(client *ws.Client, messageType string, data interface{}) {
	frame, err := ws.Encode(messageType, data)
	if err != nil {
		logger.Error("Failed to encode %s frame for %s: %v", messageType, client.ID, err)
		return
	}
	h.wsManager.SendToClient(client.ID, frame)
}
