package metrics

import "go.uber.org/fx"

// Module 计量模块
var Module = fx.Module("core_metrics",
	fx.Provide(NewReporter),
)
