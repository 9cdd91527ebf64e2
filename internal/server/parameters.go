package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/immolens/internal/observability/logger"
	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/ratelimit"
	"go.uber.org/zap"
)

const refreshLockTTL = 30 * time.Second

func (s *Server) GetParameters(c *gin.Context) {
	year, ok := fiscalYearParam(c)
	if !ok {
		return
	}

	cfg, err := s.parameters.GetConfig(c.Request.Context(), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cfg})
}

// RefreshParameters drops the cached configuration of a year and resolves it
// again. Concurrent refreshes of the same year across instances are rejected.
func (s *Server) RefreshParameters(c *gin.Context) {
	year, ok := fiscalYearParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var cfg paramdomain.ResolvedConfiguration
	err := s.locker.WithLock(ctx, ratelimit.ParametersLockKey(year), refreshLockTTL, func(ctx context.Context) error {
		s.parameters.Invalidate(year)
		var err error
		cfg, err = s.parameters.GetConfig(ctx, year)
		return err
	})
	switch {
	case errors.Is(err, ratelimit.ErrLockHeld):
		AbortWithError(c, ErrConflict)
		return
	case errors.Is(err, ratelimit.ErrLockUnavailable):
		logger.FromContext(ctx).Warn("parameters refresh lock failed", zap.Error(err))
		AbortWithError(c, ErrServiceUnavailable)
		return
	case err != nil:
		AbortWithError(c, err)
		return
	}

	s.log.Info("fiscal parameters refreshed",
		zap.Int("fiscal_year", year),
		zap.String("source", string(cfg.Source)),
	)
	c.JSON(http.StatusOK, gin.H{"data": cfg})
}

func fiscalYearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(c.Param("year")))
	if err != nil {
		AbortWithError(c, newValidationError("year", "invalid_value", "year must be an integer"))
		return 0, false
	}
	return year, true
}
