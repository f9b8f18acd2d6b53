package middlewares

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/utils/flag"
	"github.com/Lukiyanto/cisaroni-news/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// ActorKey is the gin context key holding the authenticated *model.User.
const ActorKey = "actor"

var (
	// jwtSecret signs and verifies actor tokens. Before using any middleware,
	// make sure Setup ran.
	jwtSecret []byte
)

// Setup initializes all package scoped variables that are needed to perform
// middleware functionalities. This function must be called before any
// middleware is used.
func Setup() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if !flag.IsDevelopment {
			// Abort directly, token verification is the only gate in front of
			// the admin surface.
			log.Log.Fatal("JWT_SECRET is not set")
		}
		secret = "cisaroni-dev-secret"
	}
	jwtSecret = []byte(secret)
}

// IssueToken mints a signed token carrying the user id as subject. Credential
// checks live outside this service; this is used by provisioning tooling and
// tests.
func IssueToken(userID string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// JWT requires a valid bearer token and an active user behind it. The loaded
// user is stored in the context under ActorKey.
func JWT(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, errMsg := resolveActor(db, c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			c.Abort()
			return
		}
		c.Set(ActorKey, user)
		c.Next()
	}
}

// OptionalJWT loads the actor when a valid token is present but never rejects
// the request. Public pages use it so reads can be attributed to logged-in
// users.
func OptionalJWT(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, _ := resolveActor(db, c); user != nil {
			c.Set(ActorKey, user)
		}
		c.Next()
	}
}

// FakeAdmin injects a synthetic admin actor. Gated behind the no_auth flag,
// local debugging only.
func FakeAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ActorKey, &model.User{
			Id:     "dev-admin",
			Name:   "Dev Admin",
			Role:   model.RoleAdmin,
			Status: model.UserStatusActive,
		})
		c.Next()
	}
}

func resolveActor(db *gorm.DB, c *gin.Context) (*model.User, string) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, "missing bearer token"
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, "invalid token"
	}

	var user model.User
	if err := db.Where("id = ?", claims.Subject).First(&user).Error; err != nil {
		return nil, "unknown user"
	}
	if !user.IsActive() {
		return nil, "inactive user"
	}
	return &user, ""
}
