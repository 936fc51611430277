// Package moderator classifies user-authored text through the Sightengine
// text moderation API. The client fails closed: whenever the provider cannot
// be reached or answers with garbage, the text is reported unsafe.
package moderator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GhostMEn20034/small-social-network/domain"
)

const (
	DefaultEndpoint = "https://api.sightengine.com/1.0/text/check.json"

	// flagThreshold is the per-class score above which content is flagged
	flagThreshold = 0.60

	defaultTimeout = 10 * time.Second
)

type sightengineModerator struct {
	endpoint  string
	apiUser   string
	apiSecret string
	client    *http.Client
}

var _ domain.ContentModerator = (*sightengineModerator)(nil)

// NewSightengineModerator will create an implementation of domain.ContentModerator
func NewSightengineModerator(endpoint, apiUser, apiSecret string) *sightengineModerator {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &sightengineModerator{
		endpoint:  endpoint,
		apiUser:   apiUser,
		apiSecret: apiSecret,
		client:    &http.Client{Timeout: defaultTimeout},
	}
}

type moderationResponse struct {
	Status            string                     `json:"status"`
	ModerationClasses map[string]json.RawMessage `json:"moderation_classes"`
}

func (m *sightengineModerator) ModerateText(ctx context.Context, text string) bool {
	form := url.Values{}
	form.Set("text", text)
	form.Set("mode", "ml")
	form.Set("lang", "en")
	form.Set("models", "general,self-harm")
	form.Set("api_user", m.apiUser)
	form.Set("api_secret", m.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		logrus.Warnf("moderation request build failed, treating text as unsafe: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		logrus.Warnf("moderation provider unreachable, treating text as unsafe: %v", err)
		return false
	}
	defer resp.Body.Close()

	var body moderationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logrus.Warnf("moderation response unreadable, treating text as unsafe: %v", err)
		return false
	}

	if body.Status != "success" {
		logrus.Warnf("moderation provider returned status %q, treating text as unsafe", body.Status)
		return false
	}

	available := map[string]bool{}
	if raw, ok := body.ModerationClasses["available"]; ok {
		var names []string
		if err := json.Unmarshal(raw, &names); err == nil {
			for _, name := range names {
				available[name] = true
			}
		}
	}

	for class, raw := range body.ModerationClasses {
		if !available[class] {
			continue
		}
		var score float64
		if err := json.Unmarshal(raw, &score); err != nil {
			continue
		}
		if score > flagThreshold {
			return false
		}
	}

	return true
}
