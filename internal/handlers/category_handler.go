package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finance/internal/models"
	"finance/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		auditService:    auditService,
	}
}

// CreateCategoryRequest represents the request payload for creating a custom category
type CreateCategoryRequest struct {
	Name string              `json:"name" binding:"required,max=100"`
	Type models.CategoryType `json:"type" binding:"required,category_type"`
}

// GetCategories returns every category visible to the user
// @Summary     List categories
// @Description Get the user's default and custom categories, defaults first
// @Tags        categories
// @Produce     json
// @Security    SessionCookie
// @Success     200 {object} map[string][]services.CategoryResponse "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory creates a custom category
// @Summary     Create category
// @Description Create a custom INCOME or EXPENSE category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    SessionCookie
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} services.CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Category already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	category, err := h.categoryService.CreateCustomCategory(c.Request.Context(), userID, req.Name, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditActionCreate, "CATEGORY", category.Name, c.ClientIP(),
		map[string]any{"name": category.Name, "type": category.Type})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// DeleteCategory deletes a custom category by name
// @Summary     Delete category
// @Description Delete a custom category that no transaction references
// @Tags        categories
// @Produce     json
// @Security    SessionCookie
// @Param       name path string true "Category name"
// @Success     200 {object} MessageResponse "Category deleted"
// @Failure     400 {object} ErrorResponse "Category in use"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Default category"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{name} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	name := strings.TrimSpace(c.Param("name"))
	if err := h.categoryService.DeleteCategoryByName(c.Request.Context(), userID, name); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), userID, services.AuditActionDelete, "CATEGORY", name, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
