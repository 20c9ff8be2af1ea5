package expense

import (
	"butce-backend/internal/request"
	"butce-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/months/:id/expenses
func ListExpensesHandler(s *store.ExpenseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		monthID, err := request.ParamID(c, "id", "ay bulunamadı")
		if err != nil {
			return err
		}

		rows, err := s.List(c.UserContext(), monthID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"expenses": ToResponses(rows)})
	}
}

// GET /api/months/:id/expenses/:eid
func GetExpenseHandler(s *store.ExpenseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		monthID, id, err := expensePath(c)
		if err != nil {
			return err
		}

		exp, err := s.Get(c.UserContext(), monthID, id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"expense": ToResponse(*exp)})
	}
}

// PUT /api/months/:id/expenses/:eid
func UpdateExpenseHandler(s *store.ExpenseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		monthID, id, err := expensePath(c)
		if err != nil {
			return err
		}

		var body ExpenseRequest
		if err := request.ParseBody(c, &body); err != nil {
			return err
		}
		in, err := body.Input()
		if err != nil {
			return err
		}

		exp, err := s.Update(c.UserContext(), monthID, id, in)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"expense": ToResponse(*exp)})
	}
}

// DELETE /api/months/:id/expenses/:eid
func DeleteExpenseHandler(s *store.ExpenseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		monthID, id, err := expensePath(c)
		if err != nil {
			return err
		}

		if err := s.Delete(c.UserContext(), monthID, id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"result": true})
	}
}

func expensePath(c *fiber.Ctx) (uint, uint, error) {
	monthID, err := request.ParamID(c, "id", "gider bulunamadı")
	if err != nil {
		return 0, 0, err
	}
	id, err := request.ParamID(c, "eid", "gider bulunamadı")
	if err != nil {
		return 0, 0, err
	}
	return monthID, id, nil
}
