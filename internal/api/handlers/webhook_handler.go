package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"posflow/internal/engine/webhooks"
	apierrors "posflow/internal/pkg/errors"
	"posflow/internal/pkg/metrics"
	"posflow/internal/platform/queue"
)

// Signature headers by provider. Square sends x-square-signature, Clover
// sends X-Clover-Auth.
var signatureHeaders = map[string]string{
	"square": "X-Square-Signature",
	"clover": "X-Clover-Auth",
}

type Enqueuer interface {
	Enqueue(ctx context.Context, msg *queue.Message) error
}

// WebhookHandler acknowledges provider deliveries fast. It verifies the
// signature, classifies the envelope, and enqueues admitted events; every
// classification-level outcome is a 200 so providers do not retry noise.
type WebhookHandler struct {
	log      zerolog.Logger
	policies map[string]webhooks.SignaturePolicy
	queue    Enqueuer
}

func NewWebhookHandler(log zerolog.Logger, policies map[string]webhooks.SignaturePolicy, q Enqueuer) *WebhookHandler {
	return &WebhookHandler{log: log, policies: policies, queue: q}
}

func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	provider := ps.ByName("provider")
	metrics.EventsReceivedTotal.WithLabelValues(provider).Inc()

	policy, ok := h.policies[provider]
	if !ok {
		metrics.EventsRejectedTotal.WithLabelValues(provider, "unknown_provider").Inc()
		apierrors.WriteError(w, http.StatusNotFound, apierrors.ErrCodeNotFound, "Unknown provider", nil)
		return
	}

	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		apierrors.WriteError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Failed to read request body", nil)
		return
	}

	valid, err := policy.Verify(rawBody, r.Header.Get(signatureHeaders[provider]))
	if err != nil {
		if errors.Is(err, webhooks.ErrMalformedSignature) {
			metrics.EventsRejectedTotal.WithLabelValues(provider, "malformed_signature").Inc()
			apierrors.WriteError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Malformed signature header", nil)
			return
		}
		h.log.Error().Str("provider", provider).Err(err).Msg("signature verification failed")
		apierrors.WriteError(w, http.StatusInternalServerError, apierrors.ErrCodeInternal, "Verification failed", nil)
		return
	}
	if !valid {
		metrics.EventsRejectedTotal.WithLabelValues(provider, "invalid_signature").Inc()
		apierrors.WriteError(w, http.StatusUnauthorized, apierrors.ErrCodeInvalidSignature, "Invalid webhook signature", nil)
		return
	}

	_, class, err := webhooks.Classify(provider, rawBody)
	if err != nil {
		metrics.EventsRejectedTotal.WithLabelValues(provider, "malformed_payload").Inc()
		apierrors.WriteError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Malformed webhook payload", nil)
		return
	}

	if class == webhooks.Admitted {
		msg := &queue.Message{
			Provider:   provider,
			Payload:    rawBody,
			ReceivedAt: time.Now().Unix(),
		}
		if err := h.queue.Enqueue(r.Context(), msg); err != nil {
			// The one path where the provider should retry: the event
			// is verified and relevant but we could not keep it.
			h.log.Error().Str("provider", provider).Err(err).Msg("failed to enqueue webhook event")
			apierrors.WriteError(w, http.StatusServiceUnavailable, apierrors.ErrCodeUnavailable, "Event queue unavailable", nil)
			return
		}
	} else {
		h.log.Debug().Str("provider", provider).Int("classification", int(class)).Msg("acknowledging non-admitted webhook event")
	}

	w.WriteHeader(http.StatusOK)
}
