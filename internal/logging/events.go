package logging

import "go.uber.org/zap"

func LogGroupingResult(files, groups int, aiUsed bool) {
	zap.L().Info("grouping finished",
		zap.Int("files", files),
		zap.Int("groups", groups),
		zap.Bool("ai_used", aiUsed),
	)
}

func LogAPIRequest(provider, model string, promptLength int) {
	zap.L().Debug("api request",
		zap.String("provider", provider),
		zap.String("model", model),
		zap.Int("prompt_length", promptLength),
	)
}

func LogAPIResponse(provider string, success bool, responseLength int) {
	fields := []zap.Field{zap.String("provider", provider), zap.Bool("success", success)}
	if success {
		fields = append(fields, zap.Int("response_length", responseLength))
		zap.L().Debug("api response", fields...)
		return
	}
	zap.L().Warn("api response", fields...)
}

func LogError(context string, err error) {
	zap.L().Error(context, zap.Error(err))
}
