// Package gcp holds shared Google Cloud client settings.
package gcp

import (
	"fmt"
	"strings"

	"google.golang.org/api/option"

	"quizcraft/internal/config"
)

// ClientOptions returns credential options for Google Cloud clients. A value
// starting with "{" is treated as inline JSON, anything else as a file path.
// No credentials means application default credentials.
func ClientOptions(cfg config.GCPConfig) []option.ClientOption {
	creds := strings.TrimSpace(cfg.CredentialsFile)
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

// DocumentAIEndpoint is the regional endpoint for a Document AI location.
func DocumentAIEndpoint(location string) string {
	if location == "" {
		location = "us"
	}
	return fmt.Sprintf("%s-documentai.googleapis.com:443", location)
}

// ProcessorName builds the fully qualified Document AI processor resource name.
func ProcessorName(projectID, location, processorID string) string {
	if strings.HasPrefix(processorID, "projects/") {
		return processorID
	}
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", projectID, location, processorID)
}
