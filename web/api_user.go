package storefront

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	userapp "github.com/Apurer/go-gin-storefront/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
)

// UserPages handles registration, login and logout.
type UserPages struct {
	users    userports.Service
	carts    CartForgetter
	settings Settings
}

func NewUserPages(users userports.Service, carts CartForgetter, settings Settings) *UserPages {
	return &UserPages{users: users, carts: carts, settings: settings.withDefaults()}
}

type loginForm struct {
	Mail     string `form:"mail" binding:"required"`
	Password string `form:"psw" binding:"required"`
}

type registerForm struct {
	Name     string `form:"name" binding:"required,max=120"`
	Mail     string `form:"mail" binding:"required,email"`
	Password string `form:"psw" binding:"required,min=4"`
}

// Get /login
func (p *UserPages) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login", gin.H{"user": CurrentUser(c)})
}

// Post /login
// Log in by email and password
func (p *UserPages) LoginUser(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login", gin.H{"error": "Email and password are required.", "mail": form.Mail})
		return
	}
	token, _, err := p.users.Login(c.Request.Context(), form.Mail, form.Password)
	if errors.Is(err, userapp.ErrAuthentication) {
		c.HTML(http.StatusUnauthorized, "login", gin.H{"error": "Invalid email or password.", "mail": form.Mail})
		return
	}
	if err != nil {
		renderError(c, problemStatus(err), "Login is unavailable right now.")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(p.settings.AuthCookieName, token, int(p.settings.LoginTTL.Seconds()), "/", "", p.settings.CookieSecure, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// Get /register
func (p *UserPages) Register(c *gin.Context) {
	c.HTML(http.StatusOK, "register", gin.H{"user": CurrentUser(c)})
}

// Post /register
// Create an account, then continue to the login page
func (p *UserPages) RegisterUser(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register", gin.H{
			"error": "Please provide a name, a valid email and a password of at least 4 characters.",
			"name":  form.Name,
			"mail":  form.Mail,
		})
		return
	}
	_, err := p.users.Register(c.Request.Context(), form.Name, form.Mail, form.Password)
	switch {
	case errors.Is(err, userapp.ErrEmailTaken):
		c.HTML(http.StatusConflict, "register", gin.H{"error": "That email is already registered.", "name": form.Name, "mail": form.Mail})
		return
	case errors.Is(err, userapp.ErrInvalidInput):
		c.HTML(http.StatusBadRequest, "register", gin.H{"error": err.Error(), "name": form.Name, "mail": form.Mail})
		return
	case err != nil:
		renderError(c, problemStatus(err), "Registration is unavailable right now.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// Post /logout
// End the login session and start over with an empty cart
func (p *UserPages) Logout(c *gin.Context) {
	if token, err := c.Cookie(p.settings.AuthCookieName); err == nil {
		_ = p.users.Logout(c.Request.Context(), token)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(p.settings.AuthCookieName, "", -1, "/", "", p.settings.CookieSecure, true)
	if p.carts != nil {
		p.carts.Forget(c.Request.Context(), SessionID(c))
	}
	c.SetCookie(p.settings.SessionCookieName, "", -1, "/", "", p.settings.CookieSecure, true)
	c.Redirect(http.StatusSeeOther, "/")
}
