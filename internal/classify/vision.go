package classify

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/KHUSHI-P15/Hackout/pkg/formatting"
)

const visionPrompt = `Analyze this image and determine if it contains mangrove trees or a mangrove ecosystem.

Respond with ONLY a JSON object in this exact format:
{
  "isMangrove": true or false,
  "confidence": decimal between 0 and 1,
  "reasoning": "brief explanation of what you see"
}

Look for:
- Mangrove trees with prop roots or aerial roots
- Coastal or tidal wetland environment
- Brackish water ecosystem
- Typical mangrove vegetation patterns

Be conservative: only classify as mangrove if you are confident about mangrove characteristics.`

type visionResponse struct {
	IsMangrove bool    `json:"isMangrove"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// VisionBackend classifies through a hosted vision model. Each call creates
// its own agent from the configured provider. Parse failures and API errors
// surface as errors to the caller.
type VisionBackend struct {
	agent gaconfig.AgentConfig
}

// NewVisionBackend creates a hosted vision backend from the agent configuration.
func NewVisionBackend(agent gaconfig.AgentConfig) *VisionBackend {
	return &VisionBackend{agent: agent}
}

func (b *VisionBackend) Name() string {
	return BackendHostedVision
}

func (b *VisionBackend) Classify(ctx context.Context, ref ImageRef) (Result, error) {
	start := time.Now()

	a, err := agent.New(&b.agent)
	if err != nil {
		return Result{}, fmt.Errorf("create agent: %w", err)
	}

	image, err := resolveImage(ref)
	if err != nil {
		return Result{}, err
	}

	resp, err := a.Vision(ctx, visionPrompt, []string{image})
	if err != nil {
		return Result{}, fmt.Errorf("%w: vision call: %w", ErrBackendUnavailable, err)
	}

	parsed, err := formatting.Parse[visionResponse](resp.Content())
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return Result{
		Locator:        ref.Locator,
		Success:        true,
		IsMangrove:     parsed.IsMangrove,
		Confidence:     parsed.Confidence,
		Probabilities:  split(parsed.IsMangrove, parsed.Confidence),
		Reasoning:      parsed.Reasoning,
		Backend:        BackendHostedVision,
		ProcessingTime: time.Since(start).Milliseconds(),
		ClassifiedAt:   time.Now(),
	}, nil
}

// resolveImage passes remote locators through unchanged and encodes local
// files as base64 data URIs for the vision API.
func resolveImage(ref ImageRef) (string, error) {
	if ref.Remote() {
		return ref.Locator, nil
	}

	data, err := os.ReadFile(ref.Locator)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(ref.Locator))
	if contentType == "" {
		contentType = "image/png"
	}

	return fmt.Sprintf(
		"data:%s;base64,%s",
		contentType,
		base64.StdEncoding.EncodeToString(data),
	), nil
}
