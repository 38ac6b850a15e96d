package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shiptrack/api/pkg/logging"
)

const subjectLocalsKey = "subject"

// TokenVerifier resolves a bearer token to the subject it was issued for.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// NewAuthMiddleware returns a Fiber middleware that requires an
// "Authorization: Bearer <token>" header. On success the verified subject is
// stored in request locals, see SubjectFromCtx.
func NewAuthMiddleware(verifier TokenVerifier, log logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			log.Warn(c.UserContext(), "unauthenticated request", "path", c.Path(), "reason", "missing bearer token")
			return unauthorized(c)
		}
		subject, err := verifier.Verify(tokenStr)
		if err != nil {
			log.Warn(c.UserContext(), "unauthenticated request", "path", c.Path(), "reason", err.Error())
			return unauthorized(c)
		}
		c.Locals(subjectLocalsKey, subject)
		return c.Next()
	}
}

// SubjectFromCtx returns the subject bound by the auth middleware.
func SubjectFromCtx(c *fiber.Ctx) (uuid.UUID, bool) {
	subject, ok := c.Locals(subjectLocalsKey).(uuid.UUID)
	if !ok || subject == uuid.Nil {
		return uuid.Nil, false
	}
	return subject, true
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
}
