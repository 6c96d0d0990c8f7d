package echoapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	logsvc "github.com/emellab/campus/services/logger"
)

// Any origin, method and header; credentials allowed. With credentials the request
// origin is echoed back instead of "*".
var corsConfig = middleware.CORSConfig{
	AllowOrigins: []string{"*"},
	AllowMethods: []string{
		http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
		http.MethodPost, http.MethodDelete, http.MethodOptions,
	},
	AllowCredentials:                         true,
	UnsafeWildcardOriginWithAllowCredentials: true,
}

func newRequestID() string {
	return uuid.NewString()
}

func getRequestInfo(ctx echo.Context) logsvc.RequestInfo {
	req := ctx.Request()
	id := ctx.Response().Header().Get(echo.HeaderXRequestID)
	if id == "" {
		id = req.Header.Get(echo.HeaderXRequestID)
	}
	return logsvc.RequestInfo{
		ID:     id,
		Method: req.Method,
		Path:   req.URL.Path,
	}
}
