package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"clazzyapi/models"
	"clazzyapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type WardrobeController struct {
	AnalysisCache services.AnalysisCacheProvider
	Analyzer      *services.WardrobeAnalyzer
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.POST("/analyze", controller.AnalyzeClothing)
	g.POST("/analyze-batch", controller.AnalyzeClothingBatch)
}

// AnalyzeClothing accepts a multipart image upload under the "image" field
// and returns its predicted category plus dominant colors.
func (controller *WardrobeController) AnalyzeClothing(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Image file is required under the 'image' field"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Could not open uploaded file"})
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Could not read uploaded file"})
	}

	item, err := controller.AnalysisCache.GetOrAnalyze(
		c.Request().Context(),
		imageBytes,
		uuid.NewString(),
		fileHeader.Filename,
	)
	if err != nil {
		return analysisErrorResponse(c, err)
	}

	fmt.Printf("[Analyze %v] %s classified as %s (%.2f)\n", item.ID, fileHeader.Filename, item.Category, item.Confidence)

	return c.JSON(http.StatusOK, models.AnalyzeClothingOut{
		PredictedType: item.Category,
		Confidence:    item.Confidence,
		Colors:        item.Colors,
		DominantColor: item.DominantHex(),
	})
}

// AnalyzeClothingBatch analyzes every file under the "images" multipart
// field concurrently. Items that fail analysis come back as category
// `other` with zero confidence instead of failing the request.
func (controller *WardrobeController) AnalyzeClothingBatch(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Multipart form with 'images' files is required"})
	}
	fileHeaders := form.File["images"]
	if len(fileHeaders) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "At least one file under the 'images' field is required"})
	}

	inputs := make([]services.BatchInput, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Could not open uploaded file %q", fh.Filename)})
		}
		imageBytes, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Could not read uploaded file %q", fh.Filename)})
		}
		inputs = append(inputs, services.BatchInput{
			ID:           uuid.NewString(),
			FilenameHint: fh.Filename,
			ImageBytes:   imageBytes,
		})
	}

	items := controller.Analyzer.AnalyzeBatch(c.Request().Context(), inputs)
	return c.JSON(http.StatusOK, map[string][]models.WardrobeItem{"items": items})
}

func analysisErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrUnreadableImage):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Image is unreadable or corrupt"})
	case errors.Is(err, services.ErrModelUnavailable):
		sentry.CaptureException(err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Analysis model is not available, please try again later"})
	case errors.Is(err, services.ErrComputeTimeout):
		sentry.CaptureException(err)
		return c.JSON(http.StatusGatewayTimeout, map[string]string{"error": "Analysis took too long, please try again"})
	default:
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to analyze image"})
	}
}
