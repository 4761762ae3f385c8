package middleware

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"edutok/config"
	"edutok/database"
	"edutok/models"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

// jwksCache holds the provider's published keys, refreshed on unknown kid
// at most once a minute.
type jwksCache struct {
	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

var idpKeys jwksCache

func (cache *jwksCache) key(kid string) (*rsa.PublicKey, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if k, ok := cache.keys[kid]; ok {
		return k, nil
	}

	if cache.keys != nil && time.Since(cache.fetchedAt) < time.Minute {
		return nil, fmt.Errorf("unknown key id: %s", kid)
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().Get(config.AppConfig.IdPJwksURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("jwks fetch failed, code: %d", resp.StatusCode())
	}

	var set jwkSet
	if err := json.Unmarshal(resp.Body(), &set); err != nil {
		return nil, err
	}

	keys := make(map[string]*rsa.PublicKey)
	for _, k := range set.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := parseRSAKey(k)
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}

	cache.keys = keys
	cache.fetchedAt = time.Now()

	if k, ok := cache.keys[kid]; ok {
		return k, nil
	}
	return nil, fmt.Errorf("unknown key id: %s", kid)
}

func parseRSAKey(k jwk) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
}

// VerifyIdPToken validates an externally issued RS256 token against the
// provider's published key set. Signature, issuer and audience must all match.
func VerifyIdPToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		kid, _ := t.Header["kid"].(string)
		return idpKeys.key(kid)
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token payload")
	}
	if !claims.VerifyIssuer(config.AppConfig.IdPIssuer, true) {
		return nil, errors.New("issuer mismatch")
	}
	if !claims.VerifyAudience(config.AppConfig.IdPAudience, true) {
		return nil, errors.New("audience mismatch")
	}

	return claims, nil
}

// IdPMiddleware authenticates requests that carry an identity-provider token,
// provisioning a local user for the external subject on first sight.
func IdPMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Missing or invalid Authorization header",
		})
	}

	claims, err := VerifyIdPToken(authHeader[len("Bearer "):])
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Invalid identity-provider token",
		})
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Invalid token payload",
		})
	}

	var user models.User
	result := database.Database.Db.Where("external_subject = ? AND is_deleted = ?", subject, false).First(&user)
	if result.Error != nil {
		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)

		user = models.User{
			Name:            name,
			Email:           email,
			ExternalSubject: &subject,
			IsEmailVerified: true, // the provider already verified it
		}
		if err := database.Database.Db.Create(&user).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  false,
				"message": "Failed to provision user!",
			})
		}
	}

	c.Locals("userId", user.ID)
	return c.Next()
}
