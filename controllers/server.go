package controllers

import (
	"net/http"

	"clazzyapi/models"
	"clazzyapi/services"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func SetupServer(
	analysisCache services.AnalysisCacheProvider,
	analyzer *services.WardrobeAnalyzer,
) *echo.Echo {
	e := echo.New()

	v := validator.New()
	v.RegisterValidation("occasion", models.ValidateOccasion)
	v.RegisterValidation("category", models.ValidateCategory)
	e.Validator = &CustomValidator{validator: v}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.GET("/", Health)

	wardrobeController := WardrobeController{AnalysisCache: analysisCache, Analyzer: analyzer}
	wardrobeGroup := e.Group("/wardrobe")
	wardrobeController.WardrobeRoutes(wardrobeGroup)

	outfitsController := OutfitsController{Recommender: services.NewOutfitRecommender()}
	outfitsGroup := e.Group("/outfits")
	outfitsController.OutfitRoutes(outfitsGroup)

	colorsController := ColorsController{}
	colorsGroup := e.Group("/colors")
	colorsController.ColorRoutes(colorsGroup)

	return e
}

func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
