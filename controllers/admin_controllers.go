package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"campus-canteen/services"
	"campus-canteen/store"
	"campus-canteen/utils"
)

type AdminController struct {
	State *services.State
	Store store.Store
	Log   *logrus.Logger
}

func NewAdminController(state *services.State, s store.Store, log *logrus.Logger) *AdminController {
	return &AdminController{State: state, Store: s, Log: log}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credentials against the admin allow-list and issues a
// 24h token. Unknown email and wrong password return the same error, so
// the endpoint does not leak which admins exist.
func (ac *AdminController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	invalid := errors.New("invalid email or password")
	admin, err := ac.Store.AdminByEmail(c.Request.Context(), req.Email)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, invalid)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		utils.RespondError(c, http.StatusUnauthorized, invalid)
		return
	}

	token, err := utils.GenerateToken(admin.Email)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	ac.Log.Infof("admin %s logged in", admin.Email)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"email": admin.Email,
	})
}

// GetAnalytics summarizes the order history. The period query parameter
// accepts today, 7d, 30d or all (the default).
func (ac *AdminController) GetAnalytics(c *gin.Context) {
	var from time.Time
	now := time.Now()

	switch period := c.DefaultQuery("period", "all"); period {
	case "today":
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "7d":
		from = now.AddDate(0, 0, -7)
	case "30d":
		from = now.AddDate(0, 0, -30)
	case "all":
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown period "+period))
		return
	}

	summary := services.Summarize(ac.State.Orders(), from, time.Time{})
	utils.RespondJSON(c, http.StatusOK, "Analytics summary", summary)
}
