package config

// SafeErrorMessage 根据运行模式决定返回错误详情还是兜底文案。
// release 模式下不向客户端暴露内部错误，避免信息泄露；
// debug 模式（或配置未初始化的开发环境）返回原始错误便于排查。
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
