package gcp

import (
	"strings"

	"google.golang.org/api/option"

	"github.com/festify/console/core"
)

// ClientOptions returns the credentials options of the Google clients.
// CredentialsFile may hold a path or the JSON key itself; empty means application default credentials.
func ClientOptions(conf *core.Config) []option.ClientOption {
	creds := strings.TrimSpace(conf.Firebase.CredentialsFile)
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}
