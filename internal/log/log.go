// Package log emits one JSON line per application event on top of the
// standard logger. Events carry the request id and, when a session is
// attached, the acting user and their college, so campus-level activity can
// be grepped out of a single stream.
package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"campusmart/internal/domain"
)

const (
	levelInfo     = "info"
	levelAudit    = "audit"
	levelSecurity = "warn"
	levelError    = "error"
)

type entry struct {
	TS        string         `json:"ts"`
	Level     string         `json:"level"`
	Action    string         `json:"action"`
	ReqID     string         `json:"req_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	Status    int            `json:"status,omitempty"`
	UserID    int64          `json:"user_id,omitempty"`
	CollegeID int64          `json:"college_id,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{
		TS:     time.Now().UTC().Format(time.RFC3339),
		Level:  level,
		Action: action,
		Fields: fields,
	}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok {
			e.ReqID = rid
		}
		if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
			e.UserID = u.ID
			e.CollegeID = u.CollegeID
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

// Info records routine activity worth keeping, like a rejected purchase.
func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(levelInfo, c, action, nil, fields)
}

// Audit records state changes an operator may need to reconstruct later:
// registrations, sales, admin actions.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(levelAudit, c, action, nil, fields)
}

// Security records rejected or suspicious input: failed logins, traversal
// attempts, cross-college access.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(levelSecurity, c, action, nil, fields)
}

// Error records a failure the caller saw as a 5xx.
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(levelError, c, action, err, fields)
}
