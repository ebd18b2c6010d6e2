package httpapi

import (
	"errors"
	"net/http"
	"time"

	"yatube/internal/adapters/httpapi/middleware"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	view
	users         UserUseCase
	secureCookies bool
	now           func() time.Time
}

func NewUserController(users UserUseCase, secureCookies bool, logger *zap.Logger) *UserController {
	return &UserController{
		view:          view{logger: logger},
		users:         users,
		secureCookies: secureCookies,
		now:           time.Now,
	}
}

func (ctl *UserController) SignupForm(c *gin.Context) {
	ctl.render(c, http.StatusOK, "users/signup.html", gin.H{"title": "Sign up", "form": signupForm{}})
}

func (ctl *UserController) Signup(c *gin.Context) {
	var form signupForm
	rerender := func(errs formErrors) {
		form.Password1, form.Password2 = "", ""
		ctl.render(c, http.StatusOK, "users/signup.html", gin.H{"title": "Sign up", "form": form, "errors": errs})
	}
	if err := c.ShouldBind(&form); err != nil {
		rerender(bindErrors(err))
		return
	}

	ctx := c.Request.Context()
	_, err := ctl.users.RegisterUser(ctx, userPort.SignupInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Username:  form.Username,
		Email:     form.Email,
		Password:  form.Password1,
	})
	switch {
	case errors.Is(err, userPort.ErrUserExists):
		rerender(formErrors{"username": "A user with that username or e-mail already exists."})
		return
	case errors.Is(err, userPort.ErrInvalidUsername):
		rerender(formErrors{"username": err.Error()})
		return
	case errors.Is(err, userPort.ErrPasswordTooShort):
		rerender(formErrors{"password1": err.Error()})
		return
	case err != nil:
		ctl.serverError(c, err)
		return
	}

	login, err := ctl.users.LoginUser(ctx, form.Username, form.Password1)
	if err != nil {
		ctl.serverError(c, err)
		return
	}
	ctl.setSession(c, login)
	ctl.redirect(c, "/")
}

func (ctl *UserController) LoginForm(c *gin.Context) {
	ctl.render(c, http.StatusOK, "users/login.html", gin.H{
		"title": "Log in",
		"form":  loginForm{},
		"next":  c.Query("next"),
	})
}

func (ctl *UserController) Login(c *gin.Context) {
	var form loginForm
	rerender := func(errs formErrors) {
		form.Password = ""
		ctl.render(c, http.StatusOK, "users/login.html", gin.H{
			"title":  "Log in",
			"form":   form,
			"next":   form.Next,
			"errors": errs,
		})
	}
	if err := c.ShouldBind(&form); err != nil {
		rerender(bindErrors(err))
		return
	}

	login, err := ctl.users.LoginUser(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, userPort.ErrInvalidCredentials) {
		rerender(formErrors{formWide: "Please enter a correct username and password."})
		return
	}
	if err != nil {
		ctl.serverError(c, err)
		return
	}
	ctl.setSession(c, login)
	ctl.redirect(c, middleware.SafeNext(form.Next))
}

func (ctl *UserController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ctl.secureCookies, true)
	middleware.ClearUser(c)
	ctl.render(c, http.StatusOK, "users/logged_out.html", gin.H{"title": "Logged out"})
}

func (ctl *UserController) setSession(c *gin.Context, login *userPort.LoginResponse) {
	maxAge := int(login.ExpiresAt - ctl.now().Unix())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, login.Token, maxAge, "/", "", ctl.secureCookies, true)
}
