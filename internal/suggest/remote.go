package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"field-mapper/internal/classify"
	"field-mapper/internal/logging"
	"field-mapper/internal/match"
	"field-mapper/internal/schema"
)

const (
	maxResponseBytes = 8 << 20
	maxErrorSnippet  = 4 << 10
)

// instructions is the system message sent with every request.
const instructions = `You map columns of a relational source table onto fields of a business-platform entity.
The user message is a JSON document describing both sides. Target columns are split into custom
(business) columns and system columns; system columns carry a category and a priority, lower
priority numbers matter more. Use the guidance to recognize system-field naming patterns.
Map each source column to at most one target column and each target column from at most one
source column. Respond with ONLY a JSON array, no commentary, where each element is:
{"source": "<source column>", "target": "<target column>", "confidence": <0..1>,
 "transformation": "<optional conversion hint>", "rationale": "<short reason>"}
Omit source columns that have no plausible target.`

// Options configures a Remote source.
type Options struct {
	// Endpoint is the full URL the request is POSTed to.
	Endpoint string
	Model    string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BaseDelay is the wait before the first retry; it doubles per retry.
	BaseDelay time.Duration
	// Timeout bounds each HTTP attempt when HTTPClient is nil.
	Timeout time.Duration
	// ResponseTextPath is the gjson path of the model text in the response
	// body. Empty means the whole body is the text.
	ResponseTextPath string
	Headers          map[string]string
	// ExtraBody fields are set on the request body; keys are sjson paths.
	ExtraBody  map[string]any
	HTTPClient *http.Client
	Classifier classify.Classifier
	Logger     *zap.Logger
}

// Remote asks an external similarity service for candidates.
type Remote struct {
	opts   Options
	logger *zap.Logger
	do     func(*http.Request) (*http.Response, error)
	sleep  func(context.Context, time.Duration) error
}

// NewRemote validates opts and builds a Remote source.
func NewRemote(opts Options) (*Remote, error) {
	u, err := url.Parse(strings.TrimSpace(opts.Endpoint))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("similarity endpoint %q is not an absolute URL", opts.Endpoint)
	}

	opts.Endpoint = u.String()
	opts.Headers = maps.Clone(opts.Headers)
	opts.ExtraBody = maps.Clone(opts.ExtraBody)

	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	if opts.Classifier == nil {
		opts.Classifier = classify.DefaultPolicy{}
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	return &Remote{
		opts:   opts,
		logger: logging.OrNop(opts.Logger).Named("suggest.remote"),
		do:     hc.Do,
		sleep:  sleepWithCtx,
	}, nil
}

// Suggest implements Source. Service and parsing failures are logged and
// yield no candidates; only cancellation of ctx is returned as an error.
func (r *Remote) Suggest(ctx context.Context, source, target *schema.Schema, filter Filter) ([]match.Candidate, error) {
	payload := BuildPayload(source, target, filter, r.opts.Classifier)
	if len(payload.SourceColumns) == 0 || target.Len() == 0 {
		return nil, nil
	}

	body, err := r.encode(payload)
	if err != nil {
		r.logger.Warn("failed to encode similarity request", zap.Error(err))
		return nil, nil
	}

	text, err := r.call(ctx, body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		r.logger.Warn("similarity service unavailable, continuing without suggestions", zap.Error(err))

		return nil, nil
	}

	candidates, err := ParseCandidates(text)
	if err != nil {
		r.logger.Warn("could not parse similarity response, continuing without suggestions",
			zap.Error(err), zap.Int("text_length", len(text)))

		return nil, nil
	}

	r.logger.Debug("similarity suggestions received", zap.Int("candidates", len(candidates)))

	return candidates, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model,omitempty"`
	Messages []chatMessage `json:"messages"`
}

func (r *Remote) encode(p Payload) ([]byte, error) {
	user, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: r.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: instructions},
			{Role: "user", Content: string(user)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	keys := make([]string, 0, len(r.opts.ExtraBody))
	for k := range r.opts.ExtraBody {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, k := range keys {
		body, err = sjson.SetBytes(body, k, r.opts.ExtraBody[k])
		if err != nil {
			return nil, fmt.Errorf("set extra body field %q: %w", k, err)
		}
	}

	return body, nil
}

// call runs the bounded retry loop: one attempt plus up to MaxRetries retries,
// waiting Backoff(BaseDelay, n) before retry n. Only transient failures are
// retried.
func (r *Remote) call(ctx context.Context, body []byte) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= r.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := Backoff(r.opts.BaseDelay, attempt-1)
			r.logger.Debug("retrying similarity request",
				zap.Int("attempt", attempt+1), zap.Duration("delay", delay), zap.Error(lastErr))

			if err := r.sleep(ctx, delay); err != nil {
				return "", err
			}
		}

		text, err := r.invoke(ctx, body)
		if err == nil {
			return text, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		lastErr = err
		if !IsTransient(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("giving up after %d attempts: %w", r.opts.MaxRetries+1, lastErr)
}

func (r *Remote) invoke(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if r.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.opts.APIKey)
	}

	for k, v := range r.opts.Headers {
		if k != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := r.do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
		}

		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorSnippet))
		return "", &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(slurp))}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{Err: err}
	}

	return r.responseText(data)
}

func (r *Remote) responseText(data []byte) (string, error) {
	if r.opts.ResponseTextPath == "" {
		return string(data), nil
	}

	res := gjson.GetBytes(data, r.opts.ResponseTextPath)
	if !res.Exists() || res.String() == "" {
		return "", fmt.Errorf("%w: nothing at %q", ErrResponseInvalid, r.opts.ResponseTextPath)
	}

	return res.String(), nil
}
