// Package logging sets up the process-wide logrus logger every long-lived
// object derives its *logrus.Entry from.
package logging

import "github.com/sirupsen/logrus"

// Init configures the standard logger's level. Called once at startup,
// before any component derives an Entry from it.
func Init(level logrus.Level) {
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// For derives a component logger tagged with its name, e.g.
// logging.For("session").WithField("conn", id).
func For(component string) *logrus.Entry {
	return logrus.StandardLogger().WithField("component", component)
}

// ParseLevel wraps logrus.ParseLevel so callers configuring from a string
// (CLI flag, env var, config file) don't need to import logrus directly.
func ParseLevel(s string) (logrus.Level, error) {
	return logrus.ParseLevel(s)
}
