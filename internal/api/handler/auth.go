package handler

import (
	"errors"

	"keyquest/internal/models"
	"keyquest/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAuth struct {
	container *do.Injector
}

type tokenPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Token trades an identity asserted by the upstream identity provider for an
// engine-scoped JWT. The engine never authenticates users itself.
func (gr *groupAuth) Token(c echo.Context) error {
	ctx := c.Request().Context()

	var payload tokenPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	if payload.ID == 0 {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("missing user id"), errorx.Invalid))
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	userAuth := &models.UserFromAuth{ID: payload.ID, Username: payload.Username}
	user, err := serviceUser.FindOrCreateUser(ctx, userAuth)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	authentication, err := do.Invoke[*services.Authentication](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	token, err := authentication.CreateToken(userAuth)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"token": token,
		"user":  user,
	}, nil)
}
