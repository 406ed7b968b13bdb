package prometheus

import (
	"github.com/iotaledger/hive.go/app"
)

type ParametersPrometheus struct {
	Enabled         bool   `default:"true" usage:"whether the prometheus plugin is enabled"`
	BindAddress     string `default:"0.0.0.0:2112" usage:"the bind address on which the Prometheus exporter listens on"`
	GoMetrics       bool   `default:"false" usage:"include go metrics"`
	ProcessMetrics  bool   `default:"false" usage:"include process metrics"`
	PromhttpMetrics bool   `default:"false" usage:"include promhttp metrics"`
}

var ParamsPrometheus = &ParametersPrometheus{}

var params = &app.ComponentParams{
	Params: map[string]any{
		"prometheus": ParamsPrometheus,
	},
	Masked: nil,
}
