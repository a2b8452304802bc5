package fiberlog

import "github.com/sirupsen/logrus"

// Config for the request logging middleware.
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault is used when New is called with no config.
var ConfigDefault Config = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
}
