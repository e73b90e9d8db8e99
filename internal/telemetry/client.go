package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Aricg/PuckDraft/internal/config"
	"github.com/Aricg/PuckDraft/internal/constants"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Client pushes hit-counter totals to an external sink. Pushes are strictly
// best effort: failures are logged and forgotten, the next scheduled flush
// carries the newer total anyway.
type Client struct {
	url      string
	instance string
	client   *fasthttp.Client
	logger   zerolog.Logger
}

type payload struct {
	Instance   string `json:"instance"`
	Hits       int64  `json:"hits"`
	ReportedAt int64  `json:"reportedAt"`
}

func NewClient(cfg *config.Config, logger zerolog.Logger) (*Client, error) {
	instance, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	return &Client{
		url:      cfg.TelemetryURL,
		instance: instance,
		client: &fasthttp.Client{
			ReadTimeout:         constants.TelemetryTimeout,
			WriteTimeout:        constants.TelemetryTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}, nil
}

// Report sends the current hit total to the sink. It never returns an
// error; with no sink configured it is a no-op.
func (c *Client) Report(ctx context.Context, hits int64) {
	if c.url == "" {
		return
	}

	body, err := json.Marshal(payload{
		Instance:   c.instance,
		Hits:       hits,
		ReportedAt: time.Now().Unix(),
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to marshal telemetry payload")
		return
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.TelemetryTimeout)
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Warn().Err(err).Int64("hits", hits).Msg("telemetry push failed")
		return
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode()).Int64("hits", hits).Msg("telemetry sink rejected push")
		return
	}
	c.logger.Debug().Int64("hits", hits).Msg("telemetry pushed")
}
