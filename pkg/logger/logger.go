package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config 日志配置
type Config struct {
	Level      string `yaml:"level"`      // 日志级别: debug, info, warn, error
	OutputFile string `yaml:"outputFile"` // 日志文件路径（可选，为空则只输出到控制台）
	MaxSize    int    `yaml:"maxSize"`    // 日志文件最大大小（MB）
	MaxBackups int    `yaml:"maxBackups"` // 保留的旧日志文件数量
	MaxAge     int    `yaml:"maxAge"`     // 保留旧日志文件的天数
	Compress   bool   `yaml:"compress"`   // 是否压缩旧日志文件
}

// DefaultConfig 默认配置：info 级别，追加写入 futbot.log
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		OutputFile: "futbot.log",
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     14,
	}
}

// New 按配置创建日志实例。
// 返回实例而不是改进程级全局状态，由调用方注入到各组件。
// 文件输出走 lumberjack 轮转，只追加写，不被任何组件回读。
func New(config Config) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "06-01-02 15:04:05", // 格式: yy-mm-dd HH:MM:ss
	})

	writers := []io.Writer{os.Stdout}

	if config.OutputFile != "" {
		logDir := filepath.Dir(config.OutputFile)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, err
		}

		writers = append(writers, &lumberjack.Logger{
			Filename:   config.OutputFile,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}

	log.SetOutput(io.MultiWriter(writers...))
	return log, nil
}
