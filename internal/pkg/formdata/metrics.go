package formdata

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medical_document_uploads_total",
			Help: "Multipart document uploads by outcome",
		},
		[]string{"result"},
	)

	uploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "medical_document_upload_bytes",
			Help:    "Size of stored medical documents in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)
)

func observe(res *Result, err error) {
	if err != nil {
		kind := KindOf(err)
		if kind == "" {
			kind = "STORAGE_ERROR"
		}
		uploadsTotal.WithLabelValues(string(kind)).Inc()
		return
	}
	uploadsTotal.WithLabelValues("ok").Inc()
	for _, f := range res.Files {
		uploadBytes.Observe(float64(f.Size))
	}
}
