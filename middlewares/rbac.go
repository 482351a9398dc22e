package middlewares

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"crickpick/db"
	"crickpick/models"
	"crickpick/utils"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	mongodbadapter "github.com/casbin/mongodb-adapter/v3"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var enforcer *casbin.Enforcer

// The scoring engine itself performs no authorization; these policies gate
// the admin endpoints that invoke it.
var defaultPolicies = []struct {
	role     string
	resource string
	action   string
}{
	{"admin", "results", "write"},
	{"admin", "results", "evaluate"},
	{"admin", "results", "reset"},
	{"admin", "questions", "write"},
	{"admin", "leaderboard", "refresh"},
	{"moderator", "results", "write"},
	{"moderator", "questions", "write"},
}

// InitCasbin initializes the Casbin enforcer with the MongoDB adapter
func InitCasbin(mongoURI string) error {
	adapter, err := mongodbadapter.NewAdapter(mongoURI)
	if err != nil {
		return fmt.Errorf("failed to create Casbin adapter: %w", err)
	}

	modelText := `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return fmt.Errorf("failed to create Casbin model: %w", err)
	}

	enforcer, err = casbin.NewEnforcer(m, adapter)
	if err != nil {
		return fmt.Errorf("failed to create Casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	ensureDefaultPolicies()

	log.Println("Casbin RBAC initialized successfully")
	return nil
}

// ensureDefaultPolicies adds missing default policies (idempotent)
func ensureDefaultPolicies() {
	for _, policy := range defaultPolicies {
		exists, _ := enforcer.HasPolicy(policy.role, policy.resource, policy.action)
		if !exists {
			enforcer.AddPolicy(policy.role, policy.resource, policy.action)
			log.Printf("Added default policy: %s can %s %s", policy.role, policy.action, policy.resource)
		}
	}

	if err := enforcer.SavePolicy(); err != nil {
		log.Printf("Warning: Failed to save policies: %v", err)
	}
}

// AdminAuthMiddleware authenticates admins and loads their role into context
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseJWTToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "message": err.Error()})
			c.Abort()
			return
		}

		email := claims.Email
		if email == "" {
			email = claims.Sub
		}

		dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err = db.GetCollection(db.AdminsCollection).FindOne(dbCtx, bson.M{"email": email}).Decode(&admin)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Set("adminEmail", email)
		c.Set("adminID", admin.ID)
		c.Set("adminRole", admin.Role)
		c.Next()
	}
}

// RBACMiddleware checks the admin's role against the requested action
func RBACMiddleware(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminRole, exists := c.Get("adminRole")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role not found"})
			c.Abort()
			return
		}

		role := adminRole.(string)
		allowed, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			log.Printf("Casbin enforce error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Permission check failed"})
			c.Abort()
			return
		}

		if !allowed {
			log.Printf("Permission denied for role=%s, resource=%s, action=%s", role, resource, action)
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// LogAdminAction records an admin action for audit purposes
func LogAdminAction(c *gin.Context, action, resourceType, resourceID string, details map[string]interface{}) error {
	adminID, exists := c.Get("adminID")
	if !exists {
		return fmt.Errorf("adminID not found in context")
	}

	adminEmail, exists := c.Get("adminEmail")
	if !exists {
		return fmt.Errorf("adminEmail not found in context")
	}

	logEntry := models.AdminActionLog{
		AdminID:      adminID.(primitive.ObjectID),
		AdminEmail:   adminEmail.(string),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.GetHeader("User-Agent"),
		Timestamp:    time.Now(),
		Details:      details,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.GetCollection(db.AdminActionLogsCollection).InsertOne(ctx, logEntry)
	return err
}
