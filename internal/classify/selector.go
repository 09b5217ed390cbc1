package classify

import (
	"context"
	"log/slog"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// BackendStatus describes one backend's availability in the selection snapshot.
type BackendStatus struct {
	Available bool   `json:"available"`
	Detail    string `json:"detail,omitempty"`
}

// Status is the startup-time backend selection snapshot. It is cached for
// the process lifetime and reported by performance stats without re-probing.
type Status struct {
	Active       string        `json:"active"`
	LocalModel   BackendStatus `json:"local_model"`
	HostedVision BackendStatus `json:"hosted_vision"`
	Heuristic    BackendStatus `json:"heuristic"`
	ProbedAt     time.Time     `json:"probed_at"`
}

// Resolve selects the classification backend once at startup: the local
// model server if its health probe succeeds, otherwise the hosted vision
// model if an agent is configured, otherwise the keyword heuristic. The
// choice is fixed for the process lifetime; mid-call failures of the chosen
// backend are errors, never silent fallthrough.
func Resolve(
	ctx context.Context,
	cfg *Config,
	agent *gaconfig.AgentConfig,
	logger *slog.Logger,
) (Backend, Status) {
	logger = logger.With("system", "classify")

	status := Status{
		Heuristic: BackendStatus{Available: true},
		ProbedAt:  time.Now(),
	}

	local := NewLocalBackend(cfg.ModelServerURL, cfg.ModelTimeoutDuration())
	if err := local.Probe(ctx, cfg.ProbeTimeoutDuration()); err != nil {
		status.LocalModel = BackendStatus{Available: false, Detail: err.Error()}
		logger.Warn("local model server unavailable", "url", cfg.ModelServerURL, "error", err)
	} else {
		status.Active = BackendLocalModel
		status.LocalModel = BackendStatus{Available: true, Detail: cfg.ModelServerURL}
		if agent != nil {
			status.HostedVision = BackendStatus{Available: true, Detail: agent.Provider.Name}
		}

		logger.Info("local model server selected", "url", cfg.ModelServerURL)
		return local, status
	}

	if agent != nil {
		status.Active = BackendHostedVision
		status.HostedVision = BackendStatus{Available: true, Detail: agent.Provider.Name}

		logger.Info("hosted vision model selected", "provider", agent.Provider.Name)
		return NewVisionBackend(*agent), status
	}
	status.HostedVision = BackendStatus{Available: false, Detail: "no agent configured"}

	status.Active = BackendHeuristic
	logger.Warn("no model backend available, keyword heuristic selected")
	return NewHeuristicBackend(), status
}
