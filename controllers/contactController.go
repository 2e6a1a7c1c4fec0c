package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"contact-backend/database"
	"contact-backend/middlewares"
	"contact-backend/models"
)

// ContactPayload is the contact-form submission body.
type ContactPayload struct {
	Name        string  `json:"name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Association *string `json:"association"`
	Role        *string `json:"role"`
	Message     string  `json:"message" validate:"required"`
}

// CreateContact handles POST /api/contact: validate the payload, map it to a
// row together with the request metadata, insert it and return the generated
// id. Duplicate submissions are not deduplicated; each creates its own row.
func CreateContact(c *fiber.Ctx) error {
	var payload ContactPayload
	if err := middlewares.BindAndValidate(c, &payload); err != nil {
		return err
	}

	db, err := database.FromCtx(c)
	if err != nil {
		if err != database.ErrNotConfigured {
			log.WithError(err).Error("contact: database init failed")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "unable to submit message at this time")
	}

	row := models.ContactMessage{
		Name:        payload.Name,
		Email:       payload.Email,
		Association: payload.Association,
		Role:        payload.Role,
		Message:     payload.Message,
		SourcePage:  models.SourcePage,
		IPAddress:   optional(clientIP(c)),
		UserAgent:   optional(c.Get(fiber.HeaderUserAgent)),
	}

	if err := db.Create(&row).Error; err != nil {
		log.WithError(err).Error("contact: insert failed")
		return fiber.NewError(fiber.StatusInternalServerError, "unable to submit message at this time")
	}

	return c.JSON(fiber.Map{"ok": true, "id": row.Id})
}

// clientIP prefers the first X-Forwarded-For hop (set by the proxy in front
// of the service) and falls back to the socket peer.
func clientIP(c *fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	return c.IP()
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
