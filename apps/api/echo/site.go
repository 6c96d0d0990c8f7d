package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type (
	schoolInfo struct {
		Name string `json:"name"`
		Code string `json:"code"`
		Emis string `json:"emis"`
	}

	collegeInfo struct {
		Name string `json:"name"`
		Eiin string `json:"eiin"`
	}

	institutionInfo struct {
		School  schoolInfo  `json:"school"`
		College collegeInfo `json:"college"`
		Message string      `json:"message"`
	}
)

var siteInfo = institutionInfo{
	School: schoolInfo{
		Name: "Emel Laboratory School",
		Code: "484281",
		Emis: "00505030438",
	},
	College: collegeInfo{
		Name: "Arojbegi Laboratory College",
		Eiin: "139583",
	},
	Message: "Welcome to our combined institution API",
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Emel Laboratory School & Arojbegi Laboratory College API!")
}

func info(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, siteInfo)
}

func liveness(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
