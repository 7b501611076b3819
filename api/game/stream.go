package gameapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	svc_i "github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = time.Second
	outboundBuffer = 4
)

// streamer pushes session frames to websocket clients and applies the
// impulses and resets they send back.
type streamer struct {
	sessions svc_i.GameSessionManager
	logger   svc_i.Logger
	upgrader websocket.Upgrader
}

func newStreamer(sessions svc_i.GameSessionManager, logger svc_i.Logger) *streamer {
	return &streamer{
		sessions: sessions,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (s *streamer) serve(ctx *gin.Context, owner, id uuid.UUID) {
	snap, err := s.sessions.Snapshot(owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	frames, cancel, err := s.sessions.Subscribe(owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	defer cancel()

	conn, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("upgrade failed for session %s: %v", id, err))
		return
	}
	defer conn.Close()

	out := make(chan StreamEvent, outboundBuffer)
	readerDone := make(chan struct{})
	writerDone := make(chan struct{})
	defer close(writerDone)
	go s.read(conn, owner, id, out, readerDone, writerDone)

	if !s.write(conn, StreamEvent{Type: EventSnapshot, State: &snap}) {
		return
	}
	for {
		select {
		case <-readerDone:
			return
		case event := <-out:
			if !s.write(conn, event) {
				return
			}
		case frame, ok := <-frames:
			if !ok {
				message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended")
				_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
				return
			}
			if !s.write(conn, StreamEvent{Type: EventFrame, State: &frame}) {
				return
			}
		}
	}
}

func (s *streamer) write(conn *websocket.Conn, event StreamEvent) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(event) == nil
}

// read handles client messages until the connection fails. Replies go through
// out so the serving goroutine stays the only writer.
func (s *streamer) read(conn *websocket.Conn, owner, id uuid.UUID, out chan<- StreamEvent, done, writerDone chan struct{}) {
	defer close(done)

	send := func(event StreamEvent) bool {
		select {
		case out <- event:
			return true
		case <-writerDone:
			return false
		}
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg StreamMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			if !send(StreamEvent{Type: EventError, Error: "malformed message"}) {
				return
			}
			continue
		}

		switch msg.Action {
		case "", "impulse":
			dir, err := msg.direction()
			if err == nil {
				err = s.sessions.Nudge(owner, id, dir)
			}
			if err != nil && !send(StreamEvent{Type: EventError, Error: err.Error()}) {
				return
			}
		case "reset":
			var event StreamEvent
			snap, err := s.sessions.Reset(owner, id)
			if err != nil {
				event = StreamEvent{Type: EventError, Error: err.Error()}
			} else {
				event = StreamEvent{Type: EventSnapshot, State: &snap}
			}
			if !send(event) {
				return
			}
		default:
			if !send(StreamEvent{Type: EventError, Error: "unknown action " + msg.Action}) {
				return
			}
		}
	}
}
