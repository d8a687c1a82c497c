package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/linkforge/linkforge/domains/post"
	pkgError "github.com/linkforge/linkforge/pkg/error"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

type Publisher struct {
	accessToken string
	authorURN   string
	apiBase     string
}

func NewPublisher(accessToken, authorURN, apiBase string) *Publisher {
	return &Publisher{
		accessToken: accessToken,
		authorURN:   authorURN,
		apiBase:     apiBase,
	}
}

// Configured reports whether real API credentials are present. Without them
// Publish runs in simulation mode and never touches the network.
func (p *Publisher) Configured() bool {
	return p.accessToken != "" && p.authorURN != ""
}

func (p *Publisher) Publish(ctx context.Context, content, imageURL string) (post.PublishResult, error) {
	if !p.Configured() {
		simID := "sim_" + uuid.NewString()
		logrus.Infof("[LINKEDIN] simulation mode, pretending to publish post %s", simID)
		return post.PublishResult{PostID: simID}, nil
	}

	payload := p.ugcPayload(content, imageURL)
	body, err := json.Marshal(payload)
	if err != nil {
		return post.PublishResult{}, pkgError.ServiceError(fmt.Sprintf("encode ugc post: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiBase+"/ugcPosts", bytes.NewReader(body))
	if err != nil {
		return post.PublishResult{}, pkgError.ServiceError(fmt.Sprintf("build ugc request: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+p.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return post.PublishResult{}, pkgError.ServiceError(fmt.Sprintf("linkedin request failed: %v", err))
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.Errorf("[LINKEDIN] publish failed with status %d: %s", resp.StatusCode, string(raw))
		return post.PublishResult{}, pkgError.ServiceError(fmt.Sprintf("linkedin returned status %d", resp.StatusCode))
	}

	var decoded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded.ID == "" {
		// the share header carries the id when the body is empty
		decoded.ID = resp.Header.Get("X-Restli-Id")
	}

	logrus.Infof("[LINKEDIN] published post %s", decoded.ID)
	return post.PublishResult{PostID: decoded.ID}, nil
}

func (p *Publisher) ugcPayload(content, imageURL string) map[string]any {
	share := map[string]any{
		"shareCommentary":    map[string]any{"text": content},
		"shareMediaCategory": "NONE",
	}
	if imageURL != "" {
		share["shareMediaCategory"] = "ARTICLE"
		share["media"] = []map[string]any{
			{
				"status":      "READY",
				"originalUrl": imageURL,
			},
		}
	}

	return map[string]any{
		"author":         p.authorURN,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": share,
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
}
