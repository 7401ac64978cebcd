package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/nlweb-api/internal/core"
	"github.com/vovakirdan/nlweb-api/internal/proto"
)

// maxChatBodyBytes caps the chat request body; larger bodies are an internal error.
const maxChatBodyBytes = 1 << 20

// ChatHandlers provides the chat and health endpoints.
type ChatHandlers struct {
	responder *core.Responder
	delay     time.Duration
	now       func() time.Time
	log       *zerolog.Logger
}

// NewChatHandlers creates a new chat handlers instance.
// delay is how long every accepted chat message waits before it is answered.
func NewChatHandlers(responder *core.Responder, delay time.Duration, logger *zerolog.Logger) *ChatHandlers {
	return &ChatHandlers{
		responder: responder,
		delay:     delay,
		now:       time.Now,
		log:       logger,
	}
}

// Health reports service liveness.
// GET /api/health
func (h *ChatHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, proto.Healthy())
}

// Chat answers a chat message with a canned response.
// POST /api/chat
func (h *ChatHandlers) Chat(c *gin.Context) {
	resp, err := h.answer(c)
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			h.log.Debug().Err(err).Str("request_id", c.GetString(ContextKeyRequestID)).Msg("invalid chat request")
			c.JSON(http.StatusBadRequest, proto.ErrorResponse{Error: verr.Message})
			return
		}
		h.log.Error().Err(err).Str("request_id", c.GetString(ContextKeyRequestID)).Msg("error processing chat request")
		c.JSON(http.StatusInternalServerError, proto.ErrorResponse{Error: proto.ErrMsgInternal})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandlers) answer(c *gin.Context) (proto.ChatResponse, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxChatBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		return proto.ChatResponse{}, fmt.Errorf("read body: %w", err)
	}

	req, err := core.ParseChatRequest(body)
	if err != nil {
		return proto.ChatResponse{}, err
	}

	if err := h.wait(c.Request.Context()); err != nil {
		return proto.ChatResponse{}, err
	}

	text := h.responder.Respond(req.Message)
	h.log.Info().
		Str("request_id", c.GetString(ContextKeyRequestID)).
		Int("message_len", len(req.Message)).
		Msg("chat response generated")

	return proto.ChatResponse{
		Response:  text,
		// TODO: confirm with product whether this should stay wall-clock time or a fixed value.
		Timestamp: h.now().UTC().Format(proto.TimestampLayout),
		Status:    proto.StatusSuccess,
	}, nil
}

// wait parks the request goroutine for the configured delay.
func (h *ChatHandlers) wait(ctx context.Context) error {
	if h.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(h.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("response delay interrupted: %w", ctx.Err())
	}
}
