package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/immolens/internal/observability/logger"
	simdomain "github.com/smallbiznis/immolens/internal/simulation/domain"
	"go.uber.org/zap"
)

const defaultMaxBodyBytes = 1 << 20

// CreateSimulation runs one simulation on the JSON record in the body. The
// response is the engine result itself: a success envelope with status 200 or
// a failure with 400 (validation) or 500 (calculation).
func (s *Server) CreateSimulation(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			AbortWithError(c, ErrPayloadTooLarge)
			return
		}
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	switch res := s.simulations.CalculateJSON(ctx, body, nil).(type) {
	case simdomain.Success:
		c.Set("calculation_id", res.ID)
		c.JSON(http.StatusOK, res)
	case simdomain.Failure:
		status := http.StatusBadRequest
		if res.Code != simdomain.CodeValidationError {
			status = http.StatusInternalServerError
			logger.FromContext(ctx).Error("simulation failed",
				zap.String("code", res.Code),
				zap.Any("details", res.Details),
			)
		}
		c.JSON(status, res)
	default:
		AbortWithError(c, ErrInternal)
	}
}
