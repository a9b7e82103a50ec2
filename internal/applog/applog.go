// Package applog writes one JSON object per line for security and audit
// events.
package applog

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type entry struct {
	TS     string         `json:"ts"`
	Level  string         `json:"level"`
	ReqID  string         `json:"req_id,omitempty"`
	IP     string         `json:"ip,omitempty"`
	Method string         `json:"method,omitempty"`
	Path   string         `json:"path,omitempty"`
	UserID int64          `json:"user_id,omitempty"`
	Action string         `json:"action,omitempty"`
	Err    string         `json:"err,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

func write(level string, r *http.Request, userID int64, action string, err error, fields map[string]any) {
	e := entry{
		TS:     time.Now().UTC().Format(time.RFC3339),
		Level:  level,
		UserID: userID,
		Action: action,
		Fields: fields,
	}
	if r != nil {
		e.IP = r.RemoteAddr
		e.Method = r.Method
		e.Path = r.URL.Path
		e.ReqID = middleware.GetReqID(r.Context())
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

func Audit(r *http.Request, userID int64, action string, fields map[string]any) {
	write("audit", r, userID, action, nil, fields)
}

func Security(r *http.Request, action string, fields map[string]any) {
	write("warn", r, 0, action, nil, fields)
}

func Error(r *http.Request, action string, err error, fields map[string]any) {
	write("error", r, 0, action, err, fields)
}
