package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /subcategories のHTTP。参照は公開、変更はADMINのみ
type SubcategoryHandler struct {
	uc *usecase.SubcategoryUsecase
}

// DI
func NewSubcategoryHandler(uc *usecase.SubcategoryUsecase) *SubcategoryHandler {
	return &SubcategoryHandler{uc: uc}
}

type SaveSubcategoryRequest struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

func (h *SubcategoryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/subcategories", h.list)
	e.GET("/subcategories/:id", h.detail)

	g := e.Group("/subcategories")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *SubcategoryHandler) list(c echo.Context) error {
	out, err := h.uc.ListSubcategories(c.Request().Context(), c.QueryParam("category_id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SubcategoryHandler) detail(c echo.Context) error {
	out, err := h.uc.GetSubcategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SubcategoryHandler) create(c echo.Context) error {
	var req SaveSubcategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateSubcategory(c.Request().Context(), toSaveSubcategoryInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *SubcategoryHandler) update(c echo.Context) error {
	var req SaveSubcategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateSubcategory(c.Request().Context(), c.Param("id"), toSaveSubcategoryInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SubcategoryHandler) delete(c echo.Context) error {
	if err := h.uc.DeleteSubcategory(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// is_active省略時はtrue
func toSaveSubcategoryInput(req SaveSubcategoryRequest) usecase.SaveSubcategoryInput {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return usecase.SaveSubcategoryInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    isActive,
	}
}
