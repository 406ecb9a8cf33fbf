package daemon

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"resolvo/internal/logger"
	"resolvo/internal/model"
	"resolvo/internal/repository"
	"resolvo/internal/resolve"
	"resolvo/internal/vcs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Deps are the collaborators a session is rebuilt from.
type Deps struct {
	Names   resolve.NameMerger
	Content resolve.ContentMerger
	Files   resolve.LocalFiles
	Clients func(serverURL string) vcs.Client
}

type Server struct {
	echo     *echo.Echo
	deps     Deps
	wsRepo   *repository.WorkspaceRepository
	histRepo *repository.HistoryRepository
	port     int
	stopCh   chan struct{}

	mu      sync.RWMutex
	session *Session
}

func NewServer(sess *Session, deps Deps, port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		deps:     deps,
		wsRepo:   repository.NewWorkspaceRepository(),
		histRepo: repository.NewHistoryRepository(),
		port:     port,
		stopCh:   make(chan struct{}, 1),
		session:  sess,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	// For the entire daemon
	s.echo.GET("/status", s.handleStatus)
	s.echo.POST("/stop", s.handleStop)

	// Conflict resolution
	g := s.echo.Group("/conflicts")
	g.GET("", s.handleConflicts)
	g.POST("/resolve-all", s.handleResolveAll)
	g.POST("/:id/resolve", s.handleResolveConflict)
	g.POST("/:id/skip", s.handleSkipConflict)

	s.echo.GET("/ledger", s.handleLedger)
	s.echo.GET("/history", s.handleHistory)

	// Workspace registry
	w := s.echo.Group("/workspaces")
	w.GET("", s.handleListWorkspaces)
	w.POST("", s.handleAddWorkspace)
	w.DELETE("/:id", s.handleRemoveWorkspace)
}

func (s *Server) Start() {
	go func() {
		addr := ":" + strconv.Itoa(s.port)
		logger.Log.Info("daemon server started",
			zap.String("addr", addr))

		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("daemon server error", zap.Error(err))
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) StopCh() <-chan struct{} {
	return s.stopCh
}

func (s *Server) currentSession() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// refreshSession discards the current session and rebuilds it from the
// stored workspaces. The old ledger goes with it.
func (s *Server) refreshSession(ctx context.Context) error {
	workspaces, err := s.wsRepo.GetAll()
	if err != nil {
		return err
	}

	handles := make([]resolve.Workspace, 0, len(workspaces))
	for i := range workspaces {
		ws := &workspaces[i]
		handles = append(handles, resolve.Workspace{Info: ws, Client: s.deps.Clients(ws.ServerURL)})
	}

	sess, err := NewSession(ctx, handles, s.deps.Names, s.deps.Content, s.deps.Files)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	return nil
}

func (s *Server) handleStatus(c echo.Context) error {
	sess := s.currentSession()

	stats, err := s.histRepo.GetStats()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"session":    sess.ID,
		"started_at": sess.StartedAt,
		"pending":    len(sess.Resolver.Conflicts()),
		"resolved":   stats.Resolved,
		"failed":     stats.Failed,
		"skipped":    stats.Skipped,
	})
}

func (s *Server) handleStop(c echo.Context) error {
	s.stopCh <- struct{}{}
	return c.JSON(http.StatusOK, map[string]string{"status": "stopping"})
}

func (s *Server) handleConflicts(c echo.Context) error {
	if c.QueryParam("refresh") == "1" {
		if err := s.refreshSession(c.Request().Context()); err != nil {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
		}
	}

	sess := s.currentSession()
	conflicts := sess.Resolver.Conflicts()
	slices.SortFunc(conflicts, func(a, b *model.Conflict) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return c.JSON(http.StatusOK, map[string]any{
		"session":   sess.ID,
		"conflicts": conflicts,
	})
}

type resolveRequest struct {
	Resolution string `json:"resolution"`
}

func parseResolution(s string) (model.Resolution, error) {
	switch model.Resolution(s) {
	case model.AcceptMerge, model.AcceptYours, model.AcceptTheirs:
		return model.Resolution(s), nil
	default:
		return "", fmt.Errorf("unknown resolution %q", s)
	}
}

func (s *Server) handleResolveConflict(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "resolution required"})
	}

	res, err := parseResolution(req.Resolution)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sess := s.currentSession()
	conflict, ok := sess.Resolver.Lookup(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no such pending conflict"})
	}

	if res == model.AcceptMerge && !resolve.CanMerge(conflict) {
		return c.JSON(http.StatusConflict, map[string]string{
			"error": fmt.Sprintf("conflict %d is not auto-mergeable", id),
		})
	}

	outcome, err := s.resolveOne(c.Request().Context(), sess, conflict, res)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": string(outcome)})
}

func (s *Server) handleSkipConflict(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	sess := s.currentSession()
	conflict, ok := sess.Resolver.Lookup(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no such pending conflict"})
	}

	// A resolve-all worker may settle the conflict between the two lookups.
	ws, ok := sess.Resolver.WorkspaceFor(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no such pending conflict"})
	}

	sess.Resolver.Skip(conflict)

	if err := s.histRepo.Save(id, ws.Info.Name, conflict.LocalPath(), "", model.OutcomeSkipped, nil); err != nil {
		logger.Log.Warn("failed to save history", zap.Error(err))
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "skipped"})
}

func (s *Server) handleResolveAll(c echo.Context) error {
	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "resolution required"})
	}

	res, err := parseResolution(req.Resolution)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sess := s.currentSession()
	ctx := c.Request().Context()

	// Workspaces are independent servers, so they resolve in parallel;
	// conflicts within one workspace stay sequential.
	var resolved, cancelled, failed, ineligible atomic.Int64
	g := new(errgroup.Group)
	for name, conflicts := range sess.Resolver.ConflictsByWorkspace() {
		name, conflicts := name, conflicts
		g.Go(func() error {
			var errs []error
			for _, cf := range conflicts {
				if res == model.AcceptMerge && !resolve.CanMerge(cf) {
					ineligible.Add(1)
					continue
				}

				outcome, err := s.resolveOne(ctx, sess, cf, res)
				switch {
				case err != nil:
					failed.Add(1)
					errs = append(errs, fmt.Errorf("conflict %d: %w", cf.ID, err))
				case outcome == outcomeCancelled:
					cancelled.Add(1)
				default:
					resolved.Add(1)
				}
			}

			if len(errs) > 0 {
				return fmt.Errorf("workspace %s: %w", name, errors.Join(errs...))
			}
			return nil
		})
	}

	err = g.Wait()

	result := map[string]any{
		"resolved":   resolved.Load(),
		"cancelled":  cancelled.Load(),
		"failed":     failed.Load(),
		"ineligible": ineligible.Load(),
	}
	if err != nil {
		result["error"] = err.Error()
	}

	return c.JSON(http.StatusOK, result)
}

type resolveOutcome string

const (
	outcomeResolved  resolveOutcome = "resolved"
	outcomeCancelled resolveOutcome = "cancelled"
)

// resolveOne drives one conflict through the resolver and records the
// outcome. A declined name merge leaves no trace anywhere, history included.
func (s *Server) resolveOne(ctx context.Context, sess *Session, c *model.Conflict, res model.Resolution) (resolveOutcome, error) {
	ws, ok := sess.Resolver.WorkspaceFor(c.ID)
	if !ok {
		return "", fmt.Errorf("conflict %d is no longer pending", c.ID)
	}
	path := c.LocalPath()

	var err error
	switch res {
	case model.AcceptMerge:
		err = sess.Resolver.AcceptMerge(ctx, c)
	case model.AcceptYours:
		err = sess.Resolver.AcceptYours(ctx, c)
	case model.AcceptTheirs:
		err = sess.Resolver.AcceptTheirs(ctx, c)
	default:
		return "", fmt.Errorf("unknown resolution %q", res)
	}

	if err != nil {
		if histErr := s.histRepo.Save(c.ID, ws.Info.Name, path, res, model.OutcomeFailed, err); histErr != nil {
			logger.Log.Warn("failed to save history", zap.Error(histErr))
		}
		return "", err
	}

	if _, still := sess.Resolver.Lookup(c.ID); still {
		return outcomeCancelled, nil
	}

	if histErr := s.histRepo.Save(c.ID, ws.Info.Name, path, res, model.OutcomeResolved, nil); histErr != nil {
		logger.Log.Warn("failed to save history", zap.Error(histErr))
	}

	return outcomeResolved, nil
}

func (s *Server) handleLedger(c echo.Context) error {
	sess := s.currentSession()
	return c.JSON(http.StatusOK, map[string]any{
		"session": sess.ID,
		"groups":  sess.Ledger.Snapshot(),
	})
}

func (s *Server) handleHistory(c echo.Context) error {
	n := 20
	if nStr := c.QueryParam("n"); nStr != "" {
		if parsed, err := strconv.Atoi(nStr); err == nil {
			n = parsed
		}
	}

	records, err := s.histRepo.GetRecent(n)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, records)
}

func (s *Server) handleListWorkspaces(c echo.Context) error {
	workspaces, err := s.wsRepo.GetAll()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{"workspaces": workspaces})
}

type addWorkspaceRequest struct {
	Name      string `json:"name"`
	Owner     string `json:"owner"`
	ServerURL string `json:"server_url"`
	Mappings  []struct {
		ServerPath string `json:"server_path"`
		LocalPath  string `json:"local_path"`
	} `json:"mappings"`
}

func (s *Server) handleAddWorkspace(c echo.Context) error {
	var req addWorkspaceRequest
	if err := c.Bind(&req); err != nil || req.Name == "" || req.ServerURL == "" || len(req.Mappings) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name, server_url and at least one mapping required"})
	}

	ws := model.Workspace{
		Name:      req.Name,
		Owner:     req.Owner,
		ServerURL: req.ServerURL,
	}
	for _, m := range req.Mappings {
		if m.ServerPath == "" || m.LocalPath == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "mapping requires server_path and local_path"})
		}
		ws.Mappings = append(ws.Mappings, model.Mapping{ServerPath: m.ServerPath, LocalPath: m.LocalPath})
	}

	ws, err := s.wsRepo.Add(ws)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	logger.Log.Info("workspace registered",
		zap.String("name", ws.Name),
		zap.String("server", ws.ServerURL))

	// The new workspace joins the session on the next refresh.
	return c.JSON(http.StatusCreated, ws)
}

func (s *Server) handleRemoveWorkspace(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	if err := s.wsRepo.Delete(uint(id)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}
