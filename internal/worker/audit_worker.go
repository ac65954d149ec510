package worker

import (
	"github.com/spec-kit/contact-bridge/internal/service"
)

// StartPipelineAuditor registers the auditor's event handlers.
func StartPipelineAuditor(auditor *service.PipelineAuditor) {
	if auditor == nil {
		return
	}
	auditor.RegisterHandlers()
}
