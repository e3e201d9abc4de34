package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"clazzyapi/models"
	"clazzyapi/services"

	"github.com/labstack/echo/v4"
)

type OutfitsController struct {
	Recommender *services.OutfitRecommender
}

func (controller *OutfitsController) OutfitRoutes(g *echo.Group) {
	g.POST("/recommend", controller.RecommendOutfits)
	g.GET("/occasions", controller.ListOccasions)
}

// RecommendOutfits scores outfit combinations for an already analyzed
// wardrobe. Items classified as `other` are reported back in skipped_items
// instead of participating in matching.
func (controller *OutfitsController) RecommendOutfits(c echo.Context) error {
	var req models.RecommendOutfitsIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	occasion, err := services.LookupOccasion(req.Occasion)
	if err != nil {
		if errors.Is(err, services.ErrUnknownOccasion) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Unknown occasion %q", req.Occasion)})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to resolve occasion"})
	}

	outfits, skipped := controller.Recommender.Recommend(req.Wardrobe, occasion, services.RecommendOptions{
		MaxOutfits:        req.MaxOutfits,
		MinScore:          req.MinScore,
		MaxItemsPerOutfit: req.MaxItems,
	})

	if outfits == nil {
		outfits = []models.Outfit{}
	}
	if skipped == nil {
		skipped = []string{}
	}
	return c.JSON(http.StatusOK, models.RecommendOutfitsOut{
		Occasion:           occasion.Name,
		Recommendations:    outfits,
		SkippedItems:       skipped,
		TotalItemsAnalyzed: len(req.Wardrobe),
	})
}

func (controller *OutfitsController) ListOccasions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"occasions": services.OccasionNames()})
}
