package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"campus-canteen/models"
	"campus-canteen/services"
	"campus-canteen/store"
	"campus-canteen/utils"
)

type KitchenController struct {
	State *services.State
	Store store.Store
	Log   *logrus.Logger
}

func NewKitchenController(state *services.State, s store.Store, log *logrus.Logger) *KitchenController {
	return &KitchenController{State: state, Store: s, Log: log}
}

// GetChefs lists every chef with their category assignments.
func (kc *KitchenController) GetChefs(c *gin.Context) {
	ctx := c.Request.Context()
	chefs, err := kc.Store.Chefs(ctx)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	assignments, err := kc.Store.Assignments(ctx)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	byChef := make(map[string][]string, len(chefs))
	for _, a := range assignments {
		byChef[a.ChefID] = append(byChef[a.ChefID], a.CategoryID)
	}
	type chefView struct {
		models.Chef
		Categories []string `json:"categories"`
	}
	out := make([]chefView, 0, len(chefs))
	for _, chef := range chefs {
		out = append(out, chefView{Chef: chef, Categories: byChef[chef.ID]})
	}
	utils.RespondJSON(c, http.StatusOK, "List of chefs", out)
}

type chefRequest struct {
	Name     string `json:"name" binding:"required"`
	Color    string `json:"color"`
	IsActive *bool  `json:"isActive"`
}

func (kc *KitchenController) CreateChef(c *gin.Context) {
	var req chefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	chef := models.Chef{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Color:    req.Color,
		IsActive: true,
	}
	if req.IsActive != nil {
		chef.IsActive = *req.IsActive
	}
	if err := kc.Store.SaveChef(c.Request.Context(), &chef); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Chef created", chef)
}

func (kc *KitchenController) UpdateChef(c *gin.Context) {
	ctx := c.Request.Context()
	chefs, err := kc.Store.Chefs(ctx)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	id := c.Param("id")
	var chef *models.Chef
	for i := range chefs {
		if chefs[i].ID == id {
			chef = &chefs[i]
			break
		}
	}
	if chef == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("chef not found"))
		return
	}

	var req chefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	chef.Name = req.Name
	if req.Color != "" {
		chef.Color = req.Color
	}
	if req.IsActive != nil {
		chef.IsActive = *req.IsActive
	}
	if err := kc.Store.SaveChef(ctx, chef); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Chef updated", chef)
}

func (kc *KitchenController) DeleteChef(c *gin.Context) {
	if err := kc.Store.DeleteChef(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Chef deleted", nil)
}

type assignRequest struct {
	CategoryIDs []string `json:"categoryIds"`
}

// AssignCategories replaces a chef's category set. A category has exactly
// one owner: assigning it here steals it from whichever chef held it.
func (kc *KitchenController) AssignCategories(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := kc.Store.AssignCategories(c.Request.Context(), c.Param("id"), req.CategoryIDs); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Categories assigned", nil)
}

// GetDashboard builds the per-chef queues plus the unassigned-category
// warning for the kitchen display.
func (kc *KitchenController) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	chefs, err := kc.Store.Chefs(ctx)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	assignments, err := kc.Store.Assignments(ctx)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	queues := services.BuildChefQueues(kc.State.Orders(), chefs, assignments, kc.State.ItemCategories())
	utils.RespondJSON(c, http.StatusOK, "Kitchen dashboard", gin.H{
		"chefs":                chefs,
		"queues":               queues,
		"pendingCounts":        services.PendingCounts(queues),
		"unassignedCategories": services.UnassignedCategories(kc.State.Categories(), chefs, assignments),
	})
}

// TickItem marks one order line ready. Completing the last line delivers
// the whole order.
func (kc *KitchenController) TickItem(c *gin.Context) {
	orderID := c.Param("id")
	itemID := c.Param("itemId")

	delivered, err := kc.State.MarkItemReady(c.Request.Context(), orderID, itemID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
		} else {
			utils.RespondError(c, http.StatusBadRequest, err)
		}
		return
	}

	order, _ := kc.State.Order(orderID)
	utils.RespondJSON(c, http.StatusOK, "Item marked ready", gin.H{
		"order":     order,
		"delivered": delivered,
	})
}
