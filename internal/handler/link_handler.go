package handler

import (
	"net/http"

	"github.com/prhdev222/CHEMO-FINAL/internal/service"
	"github.com/prhdev222/CHEMO-FINAL/pkg/utils"

	"github.com/gin-gonic/gin"
)

type LinkHandler struct {
	linkService *service.LinkService
}

func NewLinkHandler(linkService *service.LinkService) *LinkHandler {
	return &LinkHandler{
		linkService: linkService,
	}
}

type LinkRequest struct {
	Title       string `json:"title" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
	Description string `json:"description"`
}

// List returns all ward document links
func (h *LinkHandler) List(c *gin.Context) {
	links, err := h.linkService.ListLinks()
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessResponse(c, links)
}

// Create adds a document link
func (h *LinkHandler) Create(c *gin.Context) {
	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	link, err := h.linkService.CreateLink(req.Title, req.URL, req.Description)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.CreatedResponse(c, link)
}

// Update replaces a document link
func (h *LinkHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	link, err := h.linkService.UpdateLink(id, req.Title, req.URL, req.Description)
	if err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.SuccessResponse(c, link)
}

// Delete removes a document link (admin only)
func (h *LinkHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.linkService.DeleteLink(id); err != nil {
		utils.ErrorFrom(c, err)
		return
	}

	utils.MessageResponse(c, "Link deleted successfully")
}
