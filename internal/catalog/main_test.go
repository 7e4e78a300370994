package catalog

import (
	"os"
	"testing"

	"imovel-service/pkg/config"
	"imovel-service/prometheus"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "test"}})
	os.Exit(m.Run())
}
