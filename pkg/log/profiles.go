package log

// NewProductionOptions 運用(Production)環境に最適化されたログ設定を返します。
func NewProductionOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: InfoLevel,

		MaxAge:     30,  // 30 日保管
		MaxSizeMB:  100, // 100MB 単位でローテーション
		MaxBackups: 20,  // 最大 20 個のバックアップを維持

		EnableConsoleLog: false,

		ReportCaller:     true,
		CallerPathPrefix: "",
	}
}

// NewDevelopmentOptions 開発(Development)環境に最適化されたログ設定を返します。
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: TraceLevel,

		MaxAge:     1,
		MaxSizeMB:  50,
		MaxBackups: 5,

		EnableConsoleLog: true,

		ReportCaller:     true,
		CallerPathPrefix: "",
	}
}
