package api

import (
	"github.com/yt-viral/internal/config"
	"github.com/yt-viral/internal/finder"
)

// SourceFactoryFor picks the YouTube backend named in the configuration
func SourceFactoryFor(cfg *config.Config) finder.SourceFactory {
	if cfg.Backend == config.BackendService {
		// the generated client carries its own default endpoint
		endpoint := ""
		if cfg.APIBaseURL != config.DefaultAPIBaseURL {
			endpoint = cfg.APIBaseURL + "/"
		}
		return ServiceSourceFactory(endpoint, cfg.RequestTimeout)
	}
	return RESTSourceFactory(cfg.APIBaseURL, cfg.RequestTimeout)
}
