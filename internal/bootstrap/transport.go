package bootstrap

import (
	"log/slog"

	"catalogadmin/internal/apis/catalog"
	"catalogadmin/internal/client"
	"catalogadmin/internal/config"
)

func BuildTransport(profile *config.Config, log *slog.Logger) (client.Transport, error) {
	log.Info("profile",
		"env", profile.Env,
		"base_url", profile.Catalog.BaseURL,
		"timeout_s", profile.HTTP.TimeoutSeconds,
		"concurrency", profile.HTTP.Concurrency,
	)

	return client.Build(client.Options{
		Timeout:     profile.Timeout(),
		Concurrency: profile.HTTP.Concurrency,
		Logger:      log,
	})
}

// BuildCatalog wires the remote catalog client for profile.
func BuildCatalog(profile *config.Config, log *slog.Logger) (catalog.Service, error) {
	tr, err := BuildTransport(profile, log)
	if err != nil {
		return nil, err
	}
	return catalog.New(tr, profile.Catalog.BaseURL, log), nil
}
