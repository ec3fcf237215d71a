package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type DownloadHandler struct {
	uc *usecase.DownloadUsecase
}

func NewDownloadHandler(uc *usecase.DownloadUsecase) *DownloadHandler {
	return &DownloadHandler{uc: uc}
}

func (h *DownloadHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/download/:token", h.resolve)
}

func (h *DownloadHandler) resolve(c echo.Context) error {
	out, err := h.uc.Resolve(c.Request().Context(), c.Param("token"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
