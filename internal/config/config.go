package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/halverson/reddit-user-crawler/internal/domain"
)

// DefaultSecretsFile is looked up in the working directory, next to the binary.
const DefaultSecretsFile = "secrets.json"

// DefaultUserAgent is used when no user agent is configured anywhere.
const DefaultUserAgent = "RedditUserCrawler/1.0"

// MissingCredentialError names the credential fields that could not be
// resolved from either the environment or the secrets file.
type MissingCredentialError struct {
	Fields []string
	// TemplateCreated is set when a placeholder secrets file was written
	// so the operator knows to fill it in and rerun.
	TemplateCreated bool
}

func (e *MissingCredentialError) Error() string {
	msg := fmt.Sprintf("reddit credentials not found: missing %s", strings.Join(e.Fields, ", "))
	if e.TemplateCreated {
		msg += " (created template " + DefaultSecretsFile + ", please fill it in and rerun)"
	}
	return msg
}

// Load resolves credentials from environment variables first, then fills any
// blanks from the secrets file at path. If required fields are still missing
// and no secrets file exists, a placeholder file is written and the error
// tells the operator to edit it. An existing secrets file is never touched.
func Load(path string) (domain.Credentials, error) {
	creds := domain.Credentials{
		ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		UserAgent:    os.Getenv("REDDIT_USER_AGENT"),
		Username:     os.Getenv("REDDIT_USERNAME"),
		Password:     os.Getenv("REDDIT_PASSWORD"),
	}

	fileExists := false
	if _, err := os.Stat(path); err == nil {
		fileExists = true
		if err := mergeFromFile(path, &creds); err != nil {
			return domain.Credentials{}, err
		}
	}

	if creds.UserAgent == "" {
		creds.UserAgent = DefaultUserAgent
	}

	var missing []string
	if creds.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if creds.ClientSecret == "" {
		missing = append(missing, "client_secret")
	}
	if len(missing) > 0 {
		credErr := &MissingCredentialError{Fields: missing}
		if !fileExists {
			if err := writeTemplate(path); err != nil {
				return domain.Credentials{}, fmt.Errorf("writing secrets template: %w", err)
			}
			credErr.TemplateCreated = true
		}
		return domain.Credentials{}, credErr
	}

	return creds, nil
}

// mergeFromFile fills only the fields the environment left empty, so env
// vars always win over the file.
func mergeFromFile(path string, creds *domain.Credentials) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var fromFile domain.Credentials
	if err := json.Unmarshal(b, &fromFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if creds.ClientID == "" {
		creds.ClientID = fromFile.ClientID
	}
	if creds.ClientSecret == "" {
		creds.ClientSecret = fromFile.ClientSecret
	}
	if creds.UserAgent == "" {
		creds.UserAgent = fromFile.UserAgent
	}
	if creds.Username == "" {
		creds.Username = fromFile.Username
	}
	if creds.Password == "" {
		creds.Password = fromFile.Password
	}
	return nil
}

func writeTemplate(path string) error {
	// O_EXCL: never clobber a file that appeared since the Stat.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	template := domain.Credentials{
		ClientID:     "your_reddit_client_id_here",
		ClientSecret: "your_reddit_client_secret_here",
		UserAgent:    "RedditUserCrawler/1.0 by YourUsername",
		Username:     "your_reddit_username_optional",
		Password:     "your_reddit_password_optional",
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(template)
}
