package controllers

import (
	"crypto/subtle"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"contact-backend/database"
)

const healthTokenHeader = "X-Health-Token"

// ipLookupURL returns the caller's public IP as plain text. Overridden in
// tests.
var ipLookupURL = "https://api.ipify.org"

// Dedicated client so a slow lookup cannot stall the DB probe.
var ipLookupClient = &http.Client{Timeout: 3 * time.Second}

// Health reports liveness only; no dependency checks here.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// DBHealth verifies database connectivity with a trivial query. When
// HEALTHCHECK_TOKEN is set the caller must present it in X-Health-Token;
// failures are shaped exactly like an unmatched route so the endpoint stays
// invisible to probes. On success the response carries the database host and
// the service's outbound public IP to aid network allow-listing.
func DBHealth(c *fiber.Ctx) error {
	if token := strings.TrimSpace(os.Getenv("HEALTHCHECK_TOKEN")); token != "" {
		got := c.Get(healthTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return fiber.NewError(fiber.StatusNotFound, "Cannot GET "+c.Path())
		}
	}

	handle, err := database.Get()
	if err == nil {
		err = database.Ping(handle)
	}
	if err != nil {
		if err != database.ErrNotConfigured {
			log.WithError(err).Error("db health check failed")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"to_ip":   database.Host(),
		"from_ip": outboundIP(),
	})
}

// outboundIP asks an external service for our public address. Lookup
// failures degrade to a placeholder and never fail the health check.
func outboundIP() string {
	resp, err := ipLookupClient.Get(ipLookupURL)
	if err != nil {
		log.WithError(err).Warn("outbound ip lookup failed")
		return "unknown"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "unknown"
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "unknown"
	}
	if ip := strings.TrimSpace(string(body)); ip != "" {
		return ip
	}
	return "unknown"
}
