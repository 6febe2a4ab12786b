package gocarousel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/h2non/filetype"
)

// maxRequestBody caps JSON bodies accepted by the server.
const maxRequestBody = 1 << 20

// Server exposes rendering, the image proxy, the registries and the default
// style over HTTP.
type Server struct {
	cfg      Config
	raster   *Rasterizer
	opts     *RenderOptions
	styles   StyleStore
	proxy    *AssetLoader
	upgrader websocket.Upgrader
}

// NewServer builds a server from cfg. Remote images are fetched through
// cfg.ProxyBase when set; local files are never read.
func NewServer(cfg Config, styles StyleStore) *Server {
	images := NewAssetLoader(cfg.ProxyBase)
	images.AllowFiles = false
	direct := NewAssetLoader("")
	direct.AllowFiles = false
	return &Server{
		cfg:    cfg,
		raster: NewRasterizer(images),
		opts:   &RenderOptions{JPEGQuality: 90, FontCache: NewFontCache(cfg.FontDirs...)},
		styles: styles,
		proxy:  direct,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Register installs the routes on mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /proxy", s.handleProxy)
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("GET /templates", s.handleTemplates)
	mux.HandleFunc("GET /palettes", s.handlePalettes)
	mux.HandleFunc("GET /styles/default", s.handleGetStyle)
	mux.HandleFunc("PUT /styles/default", s.handlePutStyle)
	mux.HandleFunc("DELETE /styles/default", s.handleDeleteStyle)
	mux.HandleFunc("GET /preview", s.handlePreview)
}

// Handler returns the routes wrapped with request IDs and access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		mux.ServeHTTP(w, r)
		logger().Debug("request", "id", id, "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger().Info("server listening", "addr", s.cfg.ListenAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger().Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger().Warn("writeJSON error", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": Version})
}

// handleProxy re-serves a remote image so browsers can draw it on a canvas
// without tainting it.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	u, err := url.Parse(raw)
	if raw == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("url must be an absolute http(s) URL"))
		return
	}
	data, err := s.proxy.Fetch(r.Context(), raw)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, ErrNotImage):
			status = http.StatusUnsupportedMediaType
		case errors.Is(err, ErrAssetTooLarge):
			status = http.StatusRequestEntityTooLarge
		}
		logger().Warn("proxy fetch failed", "url", raw, "err", err)
		writeError(w, status, err)
		return
	}
	kind, _ := filetype.Match(data)
	w.Header().Set("Content-Type", kind.MIME.Value)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) decodeRequest(r *http.Request) (*DrawRequest, error) {
	var req DrawRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	s.applyDefaults(&req)
	return &req, nil
}

func (s *Server) applyDefaults(req *DrawRequest) {
	if req.Width == 0 {
		req.Width = s.cfg.Width
	}
	if req.Height == 0 {
		req.Height = s.cfg.Height
	}
}

// renderBytes renders and encodes req within the configured timeout.
func (s *Server) renderBytes(ctx context.Context, req *DrawRequest, opts *RenderOptions) ([]byte, *RenderReport, error) {
	if s.cfg.RequestTimeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout.Duration)
		defer cancel()
	}
	img, rep, err := s.raster.SlideToImage(ctx, req, opts)
	if err != nil {
		return nil, rep, err
	}
	data, err := Export(img, opts)
	if err != nil {
		return nil, rep, err
	}
	rep.Bytes = len(data)
	return data, rep, nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	format, err := ParseImageFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	opts := *s.opts
	opts.Format = format

	data, rep, err := s.renderBytes(r.Context(), req, &opts)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrTemplateNotFound), errors.Is(err, ErrPaletteNotFound):
			status = http.StatusNotFound
		case errors.Is(err, ErrInvalidRequest):
			status = http.StatusBadRequest
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		}
		writeError(w, status, err)
		return
	}

	name := req.Filename()
	if format == ImageFormatJPEG {
		name = strings.TrimSuffix(name, ".png") + ".jpg"
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if rep != nil {
		w.Header().Set("X-Render-Warnings", fmt.Sprint(len(rep.Warnings)))
		w.Header().Set("X-Asset-Errors", fmt.Sprint(len(rep.AssetErrors)))
		w.Header().Set("X-Render-Size", rep.Size())
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	list := s.raster.Templates.All()
	if c := r.URL.Query().Get("category"); c != "" {
		list = s.raster.Templates.ByCategory(Category(c))
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.raster.Palettes.All())
}

func (s *Server) handleGetStyle(w http.ResponseWriter, r *http.Request) {
	st, err := s.styles.Load(r.Context(), DefaultStyleKey)
	if errors.Is(err, ErrNoDefaultStyle) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handlePutStyle(w http.ResponseWriter, r *http.Request) {
	var st StyleSpec
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&st); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode style: %w", err))
		return
	}
	if errs := validateStyle(&st); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, validationError(errs))
		return
	}
	if err := s.styles.Save(r.Context(), DefaultStyleKey, st); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDeleteStyle(w http.ResponseWriter, r *http.Request) {
	if err := s.styles.Delete(r.Context(), DefaultStyleKey); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger().Warn("preview upgrade failed", "err", err)
		return
	}
	opts := *s.opts
	servePreview(r.Context(), conn, func(ctx context.Context, req *DrawRequest) ([]byte, *RenderReport, error) {
		s.applyDefaults(req)
		return s.renderBytes(ctx, req, &opts)
	})
}
