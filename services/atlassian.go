package services

import (
	"os"
	"sync"

	confluence "github.com/ctreminiom/go-atlassian/confluence/v2"
	jira "github.com/ctreminiom/go-atlassian/jira/v3"
	"github.com/pkg/errors"
)

// AtlassianConfig holds the site and credentials shared by Confluence and Jira.
type AtlassianConfig struct {
	Host  string
	Email string
	Token string
}

// AtlassianConfigFromEnv reads ATLASSIAN_HOST, ATLASSIAN_EMAIL and ATLASSIAN_TOKEN.
func AtlassianConfigFromEnv() (AtlassianConfig, error) {
	cfg := AtlassianConfig{
		Host:  os.Getenv("ATLASSIAN_HOST"),
		Email: os.Getenv("ATLASSIAN_EMAIL"),
		Token: os.Getenv("ATLASSIAN_TOKEN"),
	}
	if cfg.Host == "" || cfg.Email == "" || cfg.Token == "" {
		return cfg, errors.New("ATLASSIAN_HOST, ATLASSIAN_EMAIL, or ATLASSIAN_TOKEN is not set, please set it in MCP Config")
	}
	return cfg, nil
}

// ConfluenceClient returns a singleton Confluence v2 client
var ConfluenceClient = sync.OnceValues(func() (*confluence.Client, error) {
	cfg, err := AtlassianConfigFromEnv()
	if err != nil {
		return nil, err
	}

	client, err := confluence.New(nil, cfg.Host)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create confluence client")
	}
	client.Auth.SetBasicAuth(cfg.Email, cfg.Token)

	return client, nil
})

// JiraClient returns a singleton Jira v3 client, whose issue fields carry ADF
var JiraClient = sync.OnceValues(func() (*jira.Client, error) {
	cfg, err := AtlassianConfigFromEnv()
	if err != nil {
		return nil, err
	}

	client, err := jira.New(nil, cfg.Host)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create jira client")
	}
	client.Auth.SetBasicAuth(cfg.Email, cfg.Token)

	return client, nil
})
