package upstream

import (
	"fmt"
	"strings"
	"time"

	"ecoheat_dashboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// checkCredential fails fast when the configured bearer token is a JWT whose
// expiry has already passed, saving a doomed round trip. Opaque tokens and
// session cookies pass through untouched; the signature is not verified here
// because the backend owns the signing key.
func (c *Client) checkCredential() error {
	if c.token == "" || strings.Count(c.token, ".") != 2 {
		return nil
	}
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(c.token, jwt.MapClaims{})
	if err != nil {
		// Not a parseable JWT after all; let the backend judge it.
		return nil
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if exp.Before(time.Now()) {
		return fmt.Errorf("bearer token expired at %s: %w",
			exp.Format(time.RFC3339), models.ErrUnauthorized)
	}
	return nil
}
