package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseID reads the :id path parameter. Writes the 400 itself so handlers
// can just bail.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery reads an optional numeric query parameter. The second
// result reports a malformed value.
func parseUintQuery(c *gin.Context, key string) (*uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key})
		return nil, false
	}
	u := uint(v)
	return &u, true
}

// stringField extracts an optional string field from a JSON patch body.
// Presence and value are reported separately so an explicit null clears
// the field.
func stringField(body map[string]interface{}, key string) (string, bool) {
	v, ok := body[key]
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, true
}

// uintField extracts an optional numeric field from a JSON patch body.
// Returns (value, present, valid); an explicit null yields a nil value.
func uintField(body map[string]interface{}, key string) (*uint, bool, bool) {
	v, ok := body[key]
	if !ok {
		return nil, false, true
	}
	if v == nil {
		return nil, true, true
	}
	f, ok := v.(float64)
	if !ok || f < 0 {
		return nil, true, false
	}
	u := uint(f)
	return &u, true, true
}
