package controllers

import (
	"github.com/shashiranjanraj/boutique/app/services"
	"github.com/shashiranjanraj/boutique/pkg/ctx"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (a *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}
	session, err := a.auth.Register(c.Context(), in)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Created(session)
}

func (a *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindJSON(&in) {
		return
	}
	session, err := a.auth.Login(c.Context(), in)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Success(session)
}

func (a *AuthController) Refresh(c *ctx.Context) {
	var in struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}
	session, err := a.auth.Refresh(c.Context(), in.RefreshToken)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Success(session)
}
