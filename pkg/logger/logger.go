// Package logger 基于zap的结构化日志
//
// 配置项对应config.LogConfig：
//   - level: debug | info | warn | error
//   - format: console（开发环境，彩色可读） | json（生产环境，便于采集）
//   - output: stdout | stderr | 文件路径
//   - enable_caller: 是否输出调用位置
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志选项（与config.LogConfig字段一致，避免pkg依赖internal）
type Options struct {
	Level        string
	Format       string
	Output       string
	EnableCaller bool
}

// New 创建zap日志并替换全局Logger
// 替换全局后，zap.L()在任何包中都可以直接使用
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("无效的日志级别 %q: %w", opts.Level, err)
		}
	}

	var cfg zap.Config
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableCaller = !opts.EnableCaller
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")

	output := opts.Output
	if output == "" {
		output = "stdout"
	}
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("创建日志失败: %w", err)
	}

	zap.ReplaceGlobals(l)
	return l, nil
}
