package httpserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tinytelemetry/bestiary/internal/catalog"
	"github.com/tinytelemetry/bestiary/internal/duckdb"
	"github.com/tinytelemetry/bestiary/internal/model"
	"github.com/tinytelemetry/bestiary/internal/palette"
	"github.com/tinytelemetry/bestiary/internal/syncer"
)

// SnapshotStore is the narrow store contract required by the HTTP API.
type SnapshotStore interface {
	model.CatalogReader
	ItemCount() (int64, error)
	RecentLoads(limit int) ([]duckdb.LoadRecord, error)
}

// Reloader runs load cycles on demand.
type Reloader interface {
	Reload(ctx context.Context) error
	Status() syncer.Status
}

// Server provides an HTTP API over the catalog snapshot.
type Server struct {
	addr      string
	store     SnapshotStore
	reloader  Reloader
	logger    *zap.Logger
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, store SnapshotStore, reloader Reloader, logger *zap.Logger) *Server {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:     addr,
		store:    store,
		reloader: reloader,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/categories", s.handleCategories)
	api.GET("/catalog", s.handleCatalog)
	api.POST("/catalog/reload", s.handleReload)
	api.GET("/loads", s.handleLoads)
	api.POST("/filter", s.handleFilter)
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.routes(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()
	s.logger.Info("http api listening", zap.String("addr", listener.Addr().String()))

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.store.ItemCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	status := s.reloader.Status()
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"phase":      status.Phase,
		"item_count": count,
		"uptime":     time.Since(s.startTime).String(),
	})
}

func (s *Server) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": palette.Categories()})
}

// handleCatalog accepts ?types=fire,water as well as repeated types params.
func (s *Server) handleCatalog(c *gin.Context) {
	var requested []string
	for _, raw := range c.QueryArray("types") {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				requested = append(requested, name)
			}
		}
	}
	s.writeVisible(c, requested)
}

func (s *Server) handleFilter(c *gin.Context) {
	var req model.FilterChanged
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	s.writeVisible(c, req.SelectedTypes)
}

// writeVisible applies the same rules as the filter panel: unknown names are
// dropped and duplicates collapse.
func (s *Server) writeVisible(c *gin.Context, requested []string) {
	selected := catalog.NewSelection(requested...).Names()

	items, err := s.store.ListItems()
	if err != nil {
		s.logger.Error("listing catalog failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read catalog"})
		return
	}

	visible := catalog.VisibleItems(items, selected)
	c.JSON(http.StatusOK, gin.H{
		"selectedTypes": selected,
		"items":         visible,
		"count":         len(visible),
	})
}

func (s *Server) handleReload(c *gin.Context) {
	// A failed load is already logged and recorded; report it in the body.
	_ = s.reloader.Reload(c.Request.Context())
	c.JSON(http.StatusOK, s.reloader.Status())
}

func (s *Server) handleLoads(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	loads, err := s.store.RecentLoads(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read load history"})
		return
	}
	if loads == nil {
		loads = []duckdb.LoadRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"loads": loads, "count": len(loads)})
}
