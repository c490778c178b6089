package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/todo-list-api/internal/config"
	"github.com/iliyamo/todo-list-api/internal/model"
)

// ErrInvalidToken is returned when a token is malformed or its signature,
// issuer or audience do not match.
var ErrInvalidToken = errors.New("invalid token")

// Wire-level claim names. These are a private encoding detail of this file;
// everything outside works with the typed Claims struct.
const (
	claimUserID     = "user_id"
	claimFirstName  = "first_name"
	claimLastName   = "last_name"
	claimPhone      = "phone_number"
	claimUniqueName = "unique_name"
	claimRole       = "role"
	claimEmail      = "email"
)

// Claims is the identity decoded from an access token.
type Claims struct {
	UserID      int64
	FirstName   string
	LastName    string
	PhoneNumber string
	UserName    string
	Role        string
	Email       string
}

// AccessToken is a signed JWT together with its expiry.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT for the user. Identity claims
// are emitted as strings; iss, aud, exp and iat ride alongside.
func NewAccessToken(cfg config.Config, u model.User) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(cfg.AccessTTLHours) * time.Hour)
	claims := jwt.MapClaims{
		claimUserID:     strconv.FormatInt(u.UserID, 10),
		claimFirstName:  u.FirstName,
		claimLastName:   u.LastName,
		claimPhone:      u.PhoneNumber,
		claimUniqueName: u.UserName,
		claimRole:       u.Role,
		claimEmail:      u.Email,
		"iss":           cfg.JWTIssuer,
		"aud":           cfg.JWTAudience,
		"exp":           exp.Unix(),
		"iat":           now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken returns 64 bytes of cryptographically secure randomness,
// base64-encoded. It carries no claims; it is only meaningful through the
// server-side lookup it enables.
func NewRefreshToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// ParseToken fully validates an access token (signature, expiry, issuer,
// audience) and returns its typed claims.
func ParseToken(cfg config.Config, raw string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.JWTIssuer),
		jwt.WithAudience(cfg.JWTAudience),
		jwt.WithExpirationRequired(),
	)
	tok, err := parser.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	return claimsFromMap(mc)
}

// ParseExpiredToken validates signature, issuer and audience but explicitly
// skips the expiry check, so an expired-but-otherwise-valid access token can
// still authorize a refresh exchange.
func ParseExpiredToken(cfg config.Config, raw string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	tok, err := parser.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	// Issuer and audience still have to match even though expiry is ignored.
	if iss, err := mc.GetIssuer(); err != nil || iss != cfg.JWTIssuer {
		return Claims{}, ErrInvalidToken
	}
	aud, err := mc.GetAudience()
	if err != nil || !containsAudience(aud, cfg.JWTAudience) {
		return Claims{}, ErrInvalidToken
	}
	return claimsFromMap(mc)
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}

func claimsFromMap(mc jwt.MapClaims) (Claims, error) {
	idStr, _ := mc[claimUserID].(string)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return Claims{}, ErrInvalidToken
	}
	str := func(key string) string {
		v, _ := mc[key].(string)
		return v
	}
	return Claims{
		UserID:      id,
		FirstName:   str(claimFirstName),
		LastName:    str(claimLastName),
		PhoneNumber: str(claimPhone),
		UserName:    str(claimUniqueName),
		Role:        str(claimRole),
		Email:       str(claimEmail),
	}, nil
}
