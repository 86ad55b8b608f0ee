package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is replaced by BootstrapLogger; the default keeps packages usable in tests.
var Log = logrus.New()

func BootstrapLogger(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.DebugLevel
	}

	Log = &logrus.Logger{
		Out:   os.Stdout,
		Hooks: make(logrus.LevelHooks),
		Formatter: &logrus.TextFormatter{
			DisableColors: false,
			FullTimestamp: true,
		},
		ReportCaller: true,
		Level:        parsed,
		ExitFunc:     os.Exit,
	}

	if err != nil && level != "" {
		Log.Warnf("unknown log level %q, using debug", level)
	}
}
