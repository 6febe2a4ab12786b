package gocarousel

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// RenderFunc renders one request to encoded image bytes.
type RenderFunc func(ctx context.Context, req *DrawRequest) ([]byte, *RenderReport, error)

// PreviewFrame is one rendered preview sent to the client.
type PreviewFrame struct {
	Generation uint64        `json:"generation"`
	Filename   string        `json:"filename,omitempty"`
	Image      []byte        `json:"image,omitempty"`
	Report     *RenderReport `json:"report,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// PreviewSession renders the requests of one client. Each Submit supersedes
// the render in flight: its context is cancelled and, should it finish
// anyway, its frame is dropped. Frames are sent in generation order.
type PreviewSession struct {
	ID string

	render RenderFunc
	send   func(PreviewFrame) error

	gen    atomic.Uint64
	mu     sync.Mutex
	cancel context.CancelFunc
	sendMu sync.Mutex
	wg     sync.WaitGroup
}

// NewPreviewSession returns a session that renders with render and delivers
// current frames through send.
func NewPreviewSession(render RenderFunc, send func(PreviewFrame) error) *PreviewSession {
	return &PreviewSession{ID: uuid.NewString(), render: render, send: send}
}

// Generation returns the number of the latest submitted request.
func (p *PreviewSession) Generation() uint64 { return p.gen.Load() }

// Submit starts rendering req and returns its generation.
func (p *PreviewSession) Submit(parent context.Context, req DrawRequest) uint64 {
	g := p.gen.Add(1)
	ctx, cancel := context.WithCancel(parent)

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.cancel = cancel
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()
		data, rep, err := p.render(ctx, &req)

		p.sendMu.Lock()
		defer p.sendMu.Unlock()
		if p.gen.Load() != g {
			logger().Debug("stale preview dropped", "session", p.ID, "generation", g)
			return
		}
		frame := PreviewFrame{Generation: g, Filename: req.Filename(), Report: rep}
		if err != nil {
			frame.Error = err.Error()
		} else {
			frame.Image = data
		}
		if err := p.send(frame); err != nil {
			logger().Debug("preview send failed", "session", p.ID, "err", err)
		}
	}()
	return g
}

// Close cancels the render in flight and waits for all renders to return.
func (p *PreviewSession) Close() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// servePreview runs a session over conn until the client disconnects.
func servePreview(ctx context.Context, conn *websocket.Conn, render RenderFunc) {
	var writeMu sync.Mutex
	sess := NewPreviewSession(render, func(f PreviewFrame) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(f)
	})
	logger().Info("preview session opened", "session", sess.ID, "remote", conn.RemoteAddr().String())
	defer func() {
		sess.Close()
		conn.Close()
		logger().Info("preview session closed", "session", sess.ID, "frames", sess.Generation())
	}()

	for {
		var req DrawRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger().Debug("preview read failed", "session", sess.ID, "err", err)
			}
			return
		}
		if err := req.Validate(); err != nil {
			writeMu.Lock()
			_ = conn.WriteJSON(PreviewFrame{Generation: sess.Generation(), Error: err.Error()})
			writeMu.Unlock()
			continue
		}
		sess.Submit(ctx, req)
	}
}
