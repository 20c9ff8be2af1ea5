package category

import (
	"butce-backend/internal/models"
	"butce-backend/internal/request"
	"butce-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CategoryResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Amount  int    `json:"amount"`
	CatType string `json:"cat_type"`
}

// CategoryRequest hem POST hem PUT gövdesidir; POST'ta tüm alanlar zorunlu.
type CategoryRequest struct {
	Name    *string `json:"name"`
	Amount  *int    `json:"amount"`
	CatType *string `json:"cat_type"`
}

func (r CategoryRequest) input() store.CategoryInput {
	return store.CategoryInput{Name: r.Name, Amount: r.Amount, CatType: r.CatType}
}

func toResponse(cat models.Category) CategoryResponse {
	return CategoryResponse{
		ID:      cat.ID,
		Name:    cat.Name,
		Amount:  cat.Amount,
		CatType: cat.CatType,
	}
}

// GET /api/categories
func ListCategoriesHandler(s *store.CategoryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cats, err := s.List(c.UserContext())
		if err != nil {
			return err
		}

		res := make([]CategoryResponse, 0, len(cats))
		for _, cat := range cats {
			res = append(res, toResponse(cat))
		}
		return c.JSON(fiber.Map{"categories": res})
	}
}

// POST /api/categories
func CreateCategoryHandler(s *store.CategoryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryRequest
		if err := request.ParseBody(c, &body); err != nil {
			return err
		}

		cat, err := s.Create(c.UserContext(), body.input())
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": toResponse(*cat)})
	}
}

// GET /api/categories/:id
func GetCategoryHandler(s *store.CategoryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id", "kategori bulunamadı")
		if err != nil {
			return err
		}

		cat, err := s.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"category": toResponse(*cat)})
	}
}

// PUT /api/categories/:id
func UpdateCategoryHandler(s *store.CategoryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id", "kategori bulunamadı")
		if err != nil {
			return err
		}

		var body CategoryRequest
		if err := request.ParseBody(c, &body); err != nil {
			return err
		}

		cat, err := s.Update(c.UserContext(), id, body.input())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"category": toResponse(*cat)})
	}
}

// DELETE /api/categories/:id
func DeleteCategoryHandler(s *store.CategoryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id", "kategori bulunamadı")
		if err != nil {
			return err
		}

		if err := s.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"result": true})
	}
}
