package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/corebit/img2dataurl/logger"
	"github.com/corebit/img2dataurl/models"
	"github.com/corebit/img2dataurl/service"
	"github.com/labstack/echo/v4"
)

const (
	adminTokenHeader = "X-Super-Admin-Token"
	defaultJobLimit  = 50
)

// RegisterRoutes wires API endpoints to Echo handlers.
func RegisterRoutes(e *echo.Echo, svc *service.ResizeService, cfg *service.Config) {
	h := handler{svc: svc, cfg: cfg}
	e.POST("/api/client/resize", h.resize)
	e.POST("/api/client/resize_to_width", h.resizeToWidth)
	e.POST("/api/client/resize_to_height", h.resizeToHeight)
	e.GET("/api/internal/jobs", h.listJobs)
	e.DELETE("/api/internal/jobs", h.resetJobs)
}

type handler struct {
	svc *service.ResizeService
	cfg *service.Config
}

func (h handler) resize(c echo.Context) error {
	req, requester, err := h.bindClientRequest(c, "resize")
	if err != nil {
		return err
	}

	resp, err := h.svc.Resize(c.Request().Context(), requester, req)
	if err != nil {
		logger.Error().Str("endpoint", "resize").Str("requester", requester).Err(err).Msg("resize failed")
		return mapServiceError(err)
	}

	logger.Info().Str("endpoint", "resize").Str("requester", requester).Int("width", resp.Width).Int("height", resp.Height).Msg("resize succeeded")
	return c.JSON(http.StatusOK, resp)
}

func (h handler) resizeToWidth(c echo.Context) error {
	req, requester, err := h.bindClientRequest(c, "resize_to_width")
	if err != nil {
		return err
	}

	resp, err := h.svc.ResizeToWidth(c.Request().Context(), requester, req)
	if err != nil {
		logger.Error().Str("endpoint", "resize_to_width").Str("requester", requester).Err(err).Msg("resize failed")
		return mapServiceError(err)
	}

	logger.Info().Str("endpoint", "resize_to_width").Str("requester", requester).Int("width", resp.Width).Int("height", resp.Height).Msg("resize succeeded")
	return c.JSON(http.StatusOK, resp)
}

func (h handler) resizeToHeight(c echo.Context) error {
	req, requester, err := h.bindClientRequest(c, "resize_to_height")
	if err != nil {
		return err
	}

	resp, err := h.svc.ResizeToHeight(c.Request().Context(), requester, req)
	if err != nil {
		logger.Error().Str("endpoint", "resize_to_height").Str("requester", requester).Err(err).Msg("resize failed")
		return mapServiceError(err)
	}

	logger.Info().Str("endpoint", "resize_to_height").Str("requester", requester).Int("width", resp.Width).Int("height", resp.Height).Msg("resize succeeded")
	return c.JSON(http.StatusOK, resp)
}

func (h handler) listJobs(c echo.Context) error {
	if err := h.ensureAdminAccess(c); err != nil {
		return err
	}

	limit := defaultJobLimit
	if v := strings.TrimSpace(c.QueryParam("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	jobs, err := h.svc.ListJobs(limit)
	if err != nil {
		logger.Error().Str("endpoint", "list_jobs").Err(err).Msg("failed to list jobs")
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	logger.Info().Str("endpoint", "list_jobs").Int("count", len(jobs)).Msg("job history listed")
	return c.JSON(http.StatusOK, jobs)
}

func (h handler) resetJobs(c echo.Context) error {
	if err := h.ensureAdminAccess(c); err != nil {
		return err
	}

	if err := h.svc.ResetJobs(); err != nil {
		logger.Error().Str("endpoint", "reset_jobs").Err(err).Msg("failed to reset jobs")
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	logger.Info().Str("endpoint", "reset_jobs").Msg("job history reset")
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// bindClientRequest binds the payload, enforces the size cap and resolves
// the requester identity through the optional bearer gate.
func (h handler) bindClientRequest(c echo.Context, endpoint string) (*models.ResizeRequest, string, error) {
	var req models.ResizeRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn().Str("endpoint", endpoint).Err(err).Msg("invalid request payload")
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if h.cfg != nil && h.cfg.MaxBlobBytes > 0 {
		// base64 expands by 4/3, so this bounds the decoded size.
		if int64(len(req.Data)) > h.cfg.MaxBlobBytes*4/3+4 {
			logger.Warn().Str("endpoint", endpoint).Int("data_len", len(req.Data)).Msg("payload exceeds size cap")
			return nil, "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "payload too large")
		}
	}

	requester, err := h.authenticate(c, &req)
	if err != nil {
		logger.Warn().Str("endpoint", endpoint).Err(err).Msg("client authentication failed")
		return nil, "", err
	}

	return &req, requester, nil
}

// authenticate resolves the caller identity. With no JWT secret configured
// the gate is open and the remote address identifies the requester.
func (h handler) authenticate(c echo.Context, req *models.ResizeRequest) (string, error) {
	if h.cfg == nil || h.cfg.JWTSecret == "" {
		return c.RealIP(), nil
	}

	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "bearer token required")
	}

	claims, err := service.ParseAPIToken(strings.TrimPrefix(auth, "Bearer "), h.cfg.JWTSecret)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	if claims.MaxPixels > 0 && req.Width != nil && req.Height != nil {
		if area := int64(*req.Width) * int64(*req.Height); area > claims.MaxPixels {
			return "", echo.NewHTTPError(http.StatusForbidden, "requested area exceeds token quota")
		}
	}

	return claims.Subject, nil
}

func (h handler) ensureAdminAccess(c echo.Context) error {
	if h.cfg == nil || h.cfg.AdminToken == "" {
		return echo.NewHTTPError(http.StatusInternalServerError, "admin token not configured")
	}
	if !isLocalhost(c.RealIP()) {
		return echo.NewHTTPError(http.StatusForbidden, "job API only available from localhost")
	}
	token := c.Request().Header.Get(adminTokenHeader)
	if token == "" || token != h.cfg.AdminToken {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid admin token")
	}
	return nil
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrTokenInvalid):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRead), errors.Is(err, service.ErrDecode):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func isLocalhost(ip string) bool {
	trimmed := ip
	if colon := strings.LastIndex(trimmed, ":"); colon != -1 {
		trimmed = trimmed[:colon]
	}
	switch trimmed {
	case "127.0.0.1", "::1", "localhost":
		return true
	default:
		return false
	}
}
