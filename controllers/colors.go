package controllers

import (
	"net/http"

	"clazzyapi/models"
	"clazzyapi/services"

	"github.com/labstack/echo/v4"
)

type ColorsController struct{}

func (controller *ColorsController) ColorRoutes(g *echo.Group) {
	g.GET("/harmony", controller.ColorHarmony)
	g.GET("/schemes", controller.ColorSchemes)
}

// ColorHarmony scores the compatibility of two hex colors passed as
// color_a and color_b query params.
func (controller *ColorsController) ColorHarmony(c echo.Context) error {
	colorA := c.QueryParam("color_a")
	colorB := c.QueryParam("color_b")
	if colorA == "" || colorB == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Both color_a and color_b query params are required"})
	}

	score, scheme, err := services.Harmony(colorA, colorB)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, models.HarmonyOut{Score: score, Scheme: scheme})
}

// ColorSchemes generates companion colors for the base color in the
// color query param.
func (controller *ColorsController) ColorSchemes(c echo.Context) error {
	base := c.QueryParam("color")
	if base == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "The color query param is required"})
	}

	schemes, err := services.CompanionSchemes(base)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, models.ColorSchemesOut{Base: base, Schemes: schemes})
}
