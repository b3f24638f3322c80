package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestNotification_BSONFieldNames(t *testing.T) {
	t.Parallel()

	now := time.Now()
	notif := Notification{
		ID:        "n1",
		Target:    TargetRef{Kind: "user", Plural: "people", ID: "42"},
		Key:       "comment.posted",
		Type:      TypeInfo,
		Priority:  PriorityNormal,
		Title:     "Test notification",
		Message:   "A comment was posted",
		Data:      map[string]any{"comment_id": "c1"},
		Actions:   []Action{{Label: "View", URL: "/comments/c1", Style: "primary"}},
		Read:      true,
		ReadAt:    &now,
		CreatedAt: now,
		ExpiresAt: &now,
	}

	raw, err := bson.Marshal(notif)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	// Top-level field names must match the keys MongoStorage filters and
	// sorts on; a drift here silently empties every query.
	for _, key := range []string{
		"id", "target", "key", "type", "priority", "title", "message",
		"data", "actions", "read", "read_at", "created_at", "expires_at",
	} {
		assert.Contains(t, doc, key)
	}

	targetDoc, ok := doc["target"].(bson.D)
	require.True(t, ok, "target must encode as an embedded document")
	target := bson.M{}
	for _, e := range targetDoc {
		target[e.Key] = e.Value
	}
	assert.Contains(t, target, "kind")
	assert.Contains(t, target, "plural")
	assert.Contains(t, target, "id")
	assert.Equal(t, "user", target["kind"])
	assert.Equal(t, "42", target["id"])
}

func TestNotification_BSONOmitsEmptyOptionalFields(t *testing.T) {
	t.Parallel()

	notif := Notification{
		ID:        "n1",
		Target:    TargetRef{Kind: "user", ID: "42"},
		Type:      TypeInfo,
		Priority:  PriorityNormal,
		Title:     "Test notification",
		CreatedAt: time.Now(),
	}

	raw, err := bson.Marshal(notif)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	assert.NotContains(t, doc, "read_at")
	assert.NotContains(t, doc, "expires_at")
	assert.NotContains(t, doc, "notifiable_path")

	targetDoc, ok := doc["target"].(bson.D)
	require.True(t, ok)
	target := bson.M{}
	for _, e := range targetDoc {
		target[e.Key] = e.Value
	}
	assert.NotContains(t, target, "plural")
}
