package echoapi

import (
	"crypto/subtle"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/emellab/campus/core"
)

type (
	loginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	loginUser struct {
		Name string `json:"name"`
	}

	loginResponse struct {
		Token string    `json:"token"`
		User  loginUser `json:"user"`
	}
)

type adminApi struct {
	creds      core.AdminConfig
	validate   *validator.Validate
	translator ut.Translator
}

func registerAdminAPI(g *echo.Group, creds core.AdminConfig, validate *validator.Validate, translator ut.Translator) {
	api := adminApi{
		creds:      creds,
		validate:   validate,
		translator: translator,
	}

	g.POST("/login", api.login)
}

// login checks the static admin credentials. The returned token is not verified by any endpoint.
func (api *adminApi) login(ctx echo.Context) error {
	var data loginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to loginRequest")
	}
	if err := core.ValidateStruct(api.validate, api.translator, data); err != nil {
		return err
	}

	if !secureEqual(data.Username, api.creds.Username) || !secureEqual(data.Password, api.creds.Password) {
		return core.ErrAuthFailed
	}
	return ctx.JSON(http.StatusOK, loginResponse{
		Token: api.creds.Token,
		User:  loginUser{Name: api.creds.Name},
	})
}

func secureEqual(given, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1
}
