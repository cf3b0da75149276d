package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nevera-api/internal/application/detection"
	"github.com/jhoicas/Nevera-api/internal/application/dto"
	"github.com/jhoicas/Nevera-api/internal/application/recipes"
)

const formFileField = "file"

// DetectionHandler recibe fotos de la nevera.
type DetectionHandler struct {
	uc *detection.DetectionUseCase
}

// NewDetectionHandler construye el handler.
func NewDetectionHandler(uc *detection.DetectionUseCase) *DetectionHandler {
	return &DetectionHandler{uc: uc}
}

// Detect godoc
// @Summary      Detectar alimentos en una foto y sumarlos al inventario
// @Tags         detection
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Foto (jpeg, png, gif, webp, bmp)"
// @Success      200   {object}  dto.DetectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /detect [post]
func (h *DetectionHandler) Detect(c *fiber.Ctx) error {
	data, bad := readUpload(c)
	if bad != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bad)
	}
	items, err := h.uc.DetectAndStore(c.UserContext(), data)
	if err != nil {
		return writeError(c, err, "INVALID_IMAGE")
	}
	return c.JSON(dto.DetectResponse{DetectedItems: items})
}

// DetectAndRecipes godoc
// @Summary      Detectar alimentos y sugerir recetas
// @Tags         detection
// @Accept       mpfd
// @Produce      json
// @Param        file        formData  file  true   "Foto"
// @Param        vegetarian  query     bool  false  "Solo recetas vegetarianas"
// @Param        top_k       query     int   false  "Cantidad de recetas (por defecto 5)"
// @Success      200   {object}  dto.DetectAndRecipesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /detect_and_recipes [post]
func (h *DetectionHandler) DetectAndRecipes(c *fiber.Ctx) error {
	data, bad := readUpload(c)
	if bad != nil {
		return c.Status(fiber.StatusBadRequest).JSON(bad)
	}
	vegetarian := c.QueryBool("vegetarian", false)
	topK := c.QueryInt("top_k", recipes.DefaultTopK)

	res, err := h.uc.DetectAndRecipes(c.UserContext(), data, vegetarian, topK)
	if err != nil {
		return writeError(c, err, "INVALID_IMAGE")
	}
	return c.JSON(res)
}

// readUpload lee el campo multipart "file".
func readUpload(c *fiber.Ctx) ([]byte, *dto.ErrorResponse) {
	fh, err := c.FormFile(formFileField)
	if err != nil {
		return nil, &dto.ErrorResponse{Code: "VALIDATION", Message: "campo multipart 'file' requerido"}
	}
	f, err := fh.Open()
	if err != nil {
		return nil, &dto.ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image file"}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, detection.MaxImageBytes+1))
	if err != nil {
		return nil, &dto.ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image file"}
	}
	return data, nil
}
