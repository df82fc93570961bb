// Package bindclient provides the main entry point for binding route trees
// with config-driven defaults.
package bindclient

import (
	"fmt"
	"strings"

	"github.com/hexennacht/restbind/internal/constants"
	"github.com/hexennacht/restbind/internal/transport"
	"github.com/hexennacht/restbind/pkg/lifecycle"
	"github.com/hexennacht/restbind/pkg/restbind"
)

// New binds a route tree using the given configuration. The base URL is
// normalized (trailing slash trimmed, "https://" added when no scheme is
// present), the default retryable transport and in-memory lifecycle engine
// are wired unless the config supplies its own.
func New(config *restbind.Config, tree restbind.Tree) (*restbind.Bound, error) {
	args, err := ConnectionArgs(config)
	if err != nil {
		return nil, err
	}

	return restbind.Bind(tree, args), nil
}

// ConnectionArgs resolves a config into ready connection arguments without
// binding a tree. Useful when the caller wants to Bind more than one tree to
// one connection.
func ConnectionArgs(config *restbind.Config) (restbind.ConnectionArgs, error) {
	if config == nil {
		return restbind.ConnectionArgs{}, restbind.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return restbind.ConnectionArgs{}, restbind.ErrBaseURLRequired
	}

	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	trans := config.Transport
	if trans == nil {
		trans = transport.New(transportOptions(config)...)
	}

	engine := config.Engine
	if engine == nil {
		var err error

		engine, err = lifecycle.NewManagerFromConfig(config.Cache)
		if err != nil {
			return restbind.ConnectionArgs{}, fmt.Errorf("building lifecycle engine: %w", err)
		}
	}

	return restbind.ConnectionArgs{
		BaseURL:     baseURL,
		BaseHeaders: config.BaseHeaders,
		Transport:   trans,
		Engine:      engine,
	}, nil
}

// transportOptions builds default transport options from config.
func transportOptions(config *restbind.Config) []transport.Option {
	var opts []transport.Option

	if config.Logger != nil {
		opts = append(opts, transport.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, transport.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, transport.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, transport.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		waitMin := constants.DefaultRetryWaitMin
		waitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			waitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			waitMax = config.RetryWaitMax
		}

		opts = append(opts, transport.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	return opts
}
