package config

import "time"

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channelID string, withErrors bool) *Slack {
	return &Slack{
		botToken:   botToken,
		channelID:  channelID,
		withErrors: withErrors,
	}
}

// NewAPIForTest creates an API config for testing purposes
func NewAPIForTest(baseURL, userID, userName string) *API {
	return &API{
		baseURL:   baseURL,
		userID:    userID,
		userName:  userName,
		timeout:   5 * time.Second,
		retryWait: 10 * time.Millisecond,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{
		backend:   backend,
		projectID: projectID,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewSettingsFileForTest creates a SettingsFile config for testing purposes
func NewSettingsFileForTest(path string) *SettingsFile {
	return &SettingsFile{path: path}
}
