package form

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// AnimationPath is where the contact animation is served from.
const AnimationPath = "/lottie/Email.json"

// AnimationPlaceholder is shown in place of an animation that failed to load.
const AnimationPlaceholder = "Animation unavailable"

// maxAnimationSize caps animation downloads.
const maxAnimationSize = 5 * 1024 * 1024

// LoadAnimation fetches the decorative animation. The payload is opaque;
// only whether it loaded matters. Any transport error, non-2xx status or
// non-JSON body reports ok=false.
func LoadAnimation(ctx context.Context, client *http.Client, url string) (json.RawMessage, bool) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxAnimationSize+1))
	if err != nil || len(raw) > maxAnimationSize || !json.Valid(raw) {
		return nil, false
	}

	return json.RawMessage(raw), true
}
