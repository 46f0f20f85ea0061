package http

import (
	"errors"
	"net/http"

	"main/internal/application/service/positions"
	"main/internal/config"
	trading "main/internal/domain/entity/trading"
	interfaces "main/internal/domain/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler is the ops/reconciliation API: a health probe and a live open-
// positions query clients fall back to when a response was silently
// dropped. Position reads happen under the same positions lock the
// pipeline uses, so a query never observes a half-written blob.
type Handler struct {
	router    *gin.Engine
	directory interfaces.UserDirectory
	schedules interfaces.ScheduleRepository
	locker    interfaces.Locker
	ledger    *positions.Service
	locks     config.LockConfig
	logger    *logrus.Entry
}

func NewHandler(directory interfaces.UserDirectory, schedules interfaces.ScheduleRepository, locker interfaces.Locker, ledger *positions.Service, locks config.LockConfig, logger *logrus.Logger) *Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handler{
		router:    router,
		directory: directory,
		schedules: schedules,
		locker:    locker,
		ledger:    ledger,
		locks:     locks,
		logger:    logger.WithField("component", "http"),
	}
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/healthz", h.health)

	api := h.router.Group("/api/v1")
	{
		api.GET("/positions/:username", h.getPositions)
	}
}

func (h *Handler) health(c *gin.Context) {
	active, err := h.schedules.Active(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("schedule check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"trading_open": len(active) > 0,
	})
}

func (h *Handler) getPositions(c *gin.Context) {
	ctx := c.Request.Context()
	username := c.Param("username")

	user, err := h.directory.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, interfaces.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
			return
		}
		h.logger.WithError(err).WithField("username", username).Error("resolve user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "directory lookup failed"})
		return
	}

	key := trading.UserPositionsKey(user.UUID)
	lease, err := h.locker.Acquire(ctx, trading.PositionsLockKey(key), h.locks.PositionsAcquire, h.locks.PositionsExpiry)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "positions busy, retry"})
		return
	}
	defer func() {
		if err := lease.Release(ctx); err != nil {
			h.logger.WithError(err).Warn("release positions lock failed")
		}
	}()

	set, err := h.ledger.Open(ctx, key)
	if err != nil {
		h.logger.WithError(err).WithField("username", username).Error("read positions failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read positions failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":  user.Username,
		"positions": set,
	})
}
