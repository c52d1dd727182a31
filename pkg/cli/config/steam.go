package config

import (
	"time"

	"github.com/m-mizutani/workshopsize/pkg/domain/interfaces"
	"github.com/m-mizutani/workshopsize/pkg/infra/steam"
	"github.com/urfave/cli/v3"
)

// Steam holds Steam endpoint configuration
type Steam struct {
	Source           string
	APIBaseURL       string
	CommunityBaseURL string
	Timeout          time.Duration
}

// Flags returns CLI flags for Steam configuration
func (c *Steam) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "source",
			Usage:       "Where to read collection data from (api, html)",
			Value:       string(steam.SourceAPI),
			Destination: &c.Source,
			Sources:     cli.EnvVars("WORKSHOPSIZE_SOURCE"),
		},
		&cli.StringFlag{
			Name:        "api-base-url",
			Usage:       "Steam Web API base URL",
			Value:       steam.DefaultAPIBaseURL,
			Destination: &c.APIBaseURL,
			Sources:     cli.EnvVars("WORKSHOPSIZE_API_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "community-base-url",
			Usage:       "Steam Community base URL",
			Value:       steam.DefaultCommunityBaseURL,
			Destination: &c.CommunityBaseURL,
			Sources:     cli.EnvVars("WORKSHOPSIZE_COMMUNITY_BASE_URL"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Timeout of each HTTP request",
			Value:       steam.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("WORKSHOPSIZE_TIMEOUT"),
		},
	}
}

// NewClient creates the Steam client described by the configuration
func (c *Steam) NewClient() (interfaces.SteamClient, error) {
	return steam.New(steam.Source(c.Source),
		steam.WithAPIBaseURL(c.APIBaseURL),
		steam.WithCommunityBaseURL(c.CommunityBaseURL),
		steam.WithTimeout(c.Timeout),
	)
}
