package notifier

import (
	"regexp"
	"strings"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

// Payload is the body delivered to the notification target.
type Payload struct {
	Kind      string `json:"kind"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	DedupeKey string `json:"dedupe_key,omitempty"`
}

func NewPayload(n domain.Notification) Payload {
	return Payload{
		Kind:      n.Kind.String(),
		Subject:   n.Subject,
		Body:      n.Body,
		DedupeKey: n.DedupeKey,
	}
}

type TaskRequest struct {
	Task Task `json:"task"`
}

type Task struct {
	Name        string      `json:"name,omitempty"`
	HTTPRequest HTTPRequest `json:"httpRequest"`
}

type HTTPRequest struct {
	URL     string            `json:"url,omitempty"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type TaskResponse struct {
	Name       string `json:"name"`
	CreateTime string `json:"createTime"`
}

var invalidTaskIDChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// TaskID turns a dedupe key into a task identifier accepted by task queues.
func TaskID(dedupeKey string) string {
	id := invalidTaskIDChars.ReplaceAllString(strings.TrimSpace(dedupeKey), "-")
	if len(id) > 500 {
		id = id[:500]
	}
	return id
}
