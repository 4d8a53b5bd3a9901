package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production sugared logger writing under the avatar's log
// directory, one file per service.
func New(logDirectory string, avatarID string, service string) (*zap.SugaredLogger, error) {
	avatarDirectory := logDirectory + avatarID
	logPath := avatarDirectory + "/" + service + ".log"

	if _, err := os.Stat(avatarDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(avatarDirectory, os.ModePerm); err != nil {
			return nil, err
		}
	}

	_, err := os.OpenFile(logPath, os.O_CREATE|os.O_RDWR, os.ModePerm)
	if err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{logPath}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = false

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}
