// Package accounts holds the session collaborators: a simulated login
// service (the real endpoint is not finalized upstream) and the registration
// client for POST /usuarios.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"tienda/internal/domain"
)

// AuthError covers bad credentials and registration conflicts. It is always
// recoverable: the view shows the message and stays interactive.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

var errBadCreds = &AuthError{Reason: "invalid email or password"}

type userRow struct {
	ID    int    `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"`
}

// Claims carried by the tokens the simulated service mints.
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SimAuth implements services.Authenticator against the local accounts
// table. It checks bcrypt hashes and mints an HS256 token, standing in for
// the real login endpoint until it exists.
type SimAuth struct {
	db       *sqlx.DB
	secret   []byte
	tokenTTL time.Duration
}

func NewSimAuth(db *sqlx.DB, secret string, tokenTTL time.Duration) *SimAuth {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SimAuth{db: db, secret: []byte(secret), tokenTTL: tokenTTL}
}

func (a *SimAuth) Authenticate(ctx context.Context, email, password string) (domain.User, string, error) {
	var row userRow
	err := a.db.GetContext(ctx, &row,
		`SELECT id,email,name,password_hash,role FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, "", errBadCreds
	}
	if err != nil {
		return domain.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(row.Hash), []byte(password)) != nil {
		return domain.User{}, "", errBadCreds
	}

	u := domain.User{ID: row.ID, Name: row.Name, Email: row.Email, Role: row.Role}
	token, err := a.mintToken(u)
	if err != nil {
		return domain.User{}, "", err
	}
	return u, token, nil
}

func (a *SimAuth) mintToken(u domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// ParseToken validates a minted token and returns its claims. The storefront
// itself never calls this on rehydrate (stored sessions are trusted as-is);
// it exists so a real services.Verifier can be built on it.
func (a *SimAuth) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, &AuthError{Reason: "invalid token"}
	}
	return claims, nil
}
