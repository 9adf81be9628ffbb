package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsHandler struct {
	inner http.Handler
}

func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{inner: promhttp.Handler()}
}

func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	h.inner.ServeHTTP(w, r)
}
