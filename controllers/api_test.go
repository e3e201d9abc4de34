package controllers

import (
	"encoding/json"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"

	"clazzyapi/models"
	"clazzyapi/services"
	"clazzyapi/test"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e *echo.Echo
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	analyzer := services.NewWardrobeAnalyzer(test.StubExtractor{Embedding: []float64{0, 0, 0, 0}})
	cache, err := services.NewAnalysisCacheService(analyzer)
	require.NoError(t, err)
	return &testServer{e: SetupServer(cache, analyzer)}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestHealthOk(t *testing.T) {
	server := setupTestServer(t)
	rec := server.do(httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}

func TestAnalyzeClothingOk(t *testing.T) {
	server := setupTestServer(t)
	img := test.SplitImage(100, 100, color.RGBA{R: 255, G: 255, B: 255, A: 255}, color.RGBA{A: 255})
	req := test.NewMultipartImageRequest("/wardrobe/analyze", "photo.png", img)

	rec := server.do(req)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var response models.AnalyzeClothingOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, models.CategoryTop, response.PredictedType)
	assert.GreaterOrEqual(t, response.Confidence, 0.60)
	assert.LessOrEqual(t, response.Confidence, 0.95)
	assert.NotEmpty(t, response.Colors)
	assert.NotEmpty(t, response.DominantColor)
}

func TestAnalyzeClothingMissingFile(t *testing.T) {
	server := setupTestServer(t)
	rec := server.do(httptest.NewRequest("POST", "/wardrobe/analyze", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeClothingBatchOk(t *testing.T) {
	server := setupTestServer(t)
	topImg := test.SplitImage(60, 60, color.RGBA{R: 255, G: 255, B: 255, A: 255}, color.RGBA{A: 255})
	bottomImg := test.SplitImage(60, 60, color.RGBA{A: 255}, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	req := test.NewMultipartImagesRequest("/wardrobe/analyze-batch", "images", []test.NamedImage{
		{Filename: "one.png", Image: topImg},
		{Filename: "two.png", Image: bottomImg},
	})

	rec := server.do(req)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var response map[string][]models.WardrobeItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	items := response["items"]
	require.Len(t, items, 2)
	assert.Equal(t, models.CategoryTop, items[0].Category)
	assert.Equal(t, models.CategoryBottom, items[1].Category)
}

func TestRecommendOutfitsOk(t *testing.T) {
	server := setupTestServer(t)
	embedding := []float64{0.1, 0.2, 0.3}
	reqBody := models.RecommendOutfitsIn{
		Occasion: "casual",
		Wardrobe: []models.WardrobeItem{
			{
				ID: "top-1", Category: models.CategoryTop, Confidence: 0.9, Embedding: embedding,
				Colors: []models.ColorInfo{{Hex: "#3B82F6", Percentage: 100}},
			},
			{
				ID: "bottom-1", Category: models.CategoryBottom, Confidence: 0.9, Embedding: embedding,
				Colors: []models.ColorInfo{{Hex: "#F97316", Percentage: 100}},
			},
		},
	}

	rec := server.do(test.NewJSONRequest("POST", "/outfits/recommend", reqBody))
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var response models.RecommendOutfitsOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "casual", response.Occasion)
	assert.Equal(t, 2, response.TotalItemsAnalyzed)
	assert.Empty(t, response.SkippedItems)
	require.Len(t, response.Recommendations, 1)
	assert.Equal(t, models.SchemeComplementary, response.Recommendations[0].Scheme)
	assert.GreaterOrEqual(t, response.Recommendations[0].Score, 0.85)
}

func TestRecommendOutfitsUnknownOccasion(t *testing.T) {
	server := setupTestServer(t)
	reqBody := models.RecommendOutfitsIn{
		Occasion: "wedding",
		Wardrobe: []models.WardrobeItem{
			{ID: "top-1", Category: models.CategoryTop, Colors: []models.ColorInfo{{Hex: "#3B82F6"}}},
		},
	}

	rec := server.do(test.NewJSONRequest("POST", "/outfits/recommend", reqBody))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendOutfitsMissingWardrobe(t *testing.T) {
	server := setupTestServer(t)
	reqBody := models.RecommendOutfitsIn{Occasion: "casual"}

	rec := server.do(test.NewJSONRequest("POST", "/outfits/recommend", reqBody))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOccasionsOk(t *testing.T) {
	server := setupTestServer(t)
	rec := server.do(httptest.NewRequest("GET", "/outfits/occasions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var response map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Contains(t, response["occasions"], "casual")
	assert.Contains(t, response["occasions"], "business")
}

func TestColorHarmonyOk(t *testing.T) {
	server := setupTestServer(t)
	rec := server.do(httptest.NewRequest("GET", "/colors/harmony?color_a=%23808080&color_b=%23FF0000", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var response models.HarmonyOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.InDelta(t, 0.85, response.Score, 0.001)
	assert.Equal(t, models.SchemeNeutral, response.Scheme)
}

func TestColorHarmonyMissingParams(t *testing.T) {
	server := setupTestServer(t)
	rec := server.do(httptest.NewRequest("GET", "/colors/harmony?color_a=%23808080", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestColorHarmonyInvalidColor(t *testing.T) {
	server := setupTestServer(t)
	rec := server.do(httptest.NewRequest("GET", "/colors/harmony?color_a=nope&color_b=%23FF0000", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestColorSchemesOk(t *testing.T) {
	server := setupTestServer(t)
	rec := server.do(httptest.NewRequest("GET", "/colors/schemes?color=%23FF0000", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var response models.ColorSchemesOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "#FF0000", response.Base)
	assert.Equal(t, []string{"#00ffff"}, response.Schemes["complementary"])
	assert.Len(t, response.Schemes["monochromatic"], 4)
}

func TestColorSchemesMissingParam(t *testing.T) {
	server := setupTestServer(t)
	rec := server.do(httptest.NewRequest("GET", "/colors/schemes", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
