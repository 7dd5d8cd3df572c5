package handlers

import (
	"net/http"
	"strings"
	"time"

	"altura-admin/internal/http/middleware"
	"altura-admin/internal/notify"

	"github.com/gin-gonic/gin"
)

type sessionInput struct {
	Token string `form:"token" json:"token" binding:"required"`
}

// LoginPage asks for the admin token issued by the booking API.
func LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", newPage(c, "Login"))
}

// SaveSession stores the token cookie used for every booking API call.
func SaveSession(c *gin.Context) {
	var in sessionInput
	if err := c.ShouldBind(&in); err != nil || strings.TrimSpace(in.Token) == "" {
		flashAndRedirect(c, "/admin/login", notify.Error("Token wajib diisi"))
		return
	}
	token := strings.TrimPrefix(strings.TrimSpace(in.Token), "Bearer ")

	maxAge := 0
	if sess := middleware.SessionFromToken(token, time.Now()); !sess.Authenticated() {
		flashAndRedirect(c, "/admin/login", notify.Error("Token sudah kedaluwarsa"))
		return
	} else if !sess.ExpiresAt.IsZero() {
		maxAge = int(time.Until(sess.ExpiresAt).Seconds())
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", false, true)
	flashAndRedirect(c, "/admin/bookings", notify.Success("Login berhasil"))
}

// Logout clears the stored credential.
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	flashAndRedirect(c, "/admin/login", notify.Notification{Level: notify.LevelInfo, Message: "Anda telah logout"})
}
