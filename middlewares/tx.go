package middlewares

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"contact-backend/database"
)

// Tx opens a per-request DB transaction for mutating methods and exposes it
// via c.Locals("tx") for database.FromCtx. The transaction commits when the
// handler chain succeeds and rolls back on error or panic, so a failed
// request leaves no row behind.
func Tx() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		default:
			return c.Next()
		}

		// First request triggers the lazy open here. On failure the chain
		// still runs without a transaction, so the controller surfaces the
		// configuration error with the right response shape.
		handle, dbErr := database.Get()
		if dbErr != nil {
			return c.Next()
		}

		tx := handle.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to begin transaction")
		}

		// Ensure we always cleanup.
		defer func() {
			if r := recover(); r != nil {
				_ = tx.Rollback()
				panic(r) // re-panic after rollback so Fiber's handler can catch
			}
			if err != nil {
				_ = tx.Rollback()
				return
			}
			if e := tx.Commit().Error; e != nil {
				log.WithError(e).Error("tx commit failed")
				err = fiber.NewError(fiber.StatusInternalServerError, "transaction commit failed")
			}
		}()

		c.Locals("tx", tx)

		err = c.Next()
		return err
	}
}
