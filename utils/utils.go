package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"courier-service/models/user"
	"courier-service/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewTrackingID generates the public opaque tracking identifier assigned to
// a shipment exactly once at creation.
func NewTrackingID() string {
	return uuid.NewString()
}

// ClaimsFromContext returns the verified JWT claims the auth middleware
// attached to the request.
func ClaimsFromContext(c *fiber.Ctx) (map[string]interface{}, error) {
	claims, ok := c.Locals("user").(map[string]interface{})
	if !ok {
		return nil, errors.New("no verified claims in request context")
	}
	return claims, nil
}

// CurrentUser resolves the acting user from the request claims, provisioning
// the local row on first sight. Roles are refreshed from the token so that
// role changes at the identity provider take effect on the next request.
func CurrentUser(c *fiber.Ctx, db *gorm.DB) (*user.User, error) {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return nil, err
	}

	userUUID, ok := claims["uuid"].(string)
	if !ok || userUUID == "" {
		return nil, errors.New("user uuid not found in token")
	}

	var u user.User
	err = db.Where("uuid = ?", userUUID).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		u = user.User{
			Uuid:  userUUID,
			Name:  stringClaim(claims, "name"),
			Phone: stringClaim(claims, "phone"),
			Roles: rolesClaim(claims),
		}
		if email := stringClaim(claims, "email"); email != "" {
			u.Email = &email
		}
		if err := db.Create(&u).Error; err != nil {
			return nil, fmt.Errorf("failed to provision user: %w", err)
		}
		return &u, nil
	}
	if err != nil {
		return nil, err
	}

	if roles := rolesClaim(claims); len(roles) > 0 {
		u.Roles = roles
		if err := db.Model(&u).Update("roles", roles).Error; err != nil {
			return nil, err
		}
	}

	return &u, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// CreateSanitizedLogEntry builds a deep-copied log entry for the async
// request logger. File uploads and oversized bodies are replaced with
// placeholders so that raw file content never reaches the log table.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	clientIP := string([]byte(c.IP()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		ClientIP:        clientIP,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}

// sanitizeRequestBody strips file content out of multipart uploads and
// replaces bodies that look like embedded base64 payloads.
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})

		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}

			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}

		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") ||
		strings.Contains(body, "base64") ||
		isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}

	return body
}

// isLikelyBase64 detects if content looks like base64
func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}

	return float64(base64Chars)/float64(len(content)) > 0.8
}

func rolesClaim(claims map[string]interface{}) user.StringSlice {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make(user.StringSlice, 0, len(raw))
	for _, r := range raw {
		if role, ok := r.(string); ok {
			roles = append(roles, role)
		}
	}
	return roles
}
