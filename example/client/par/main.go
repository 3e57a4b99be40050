package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/svenschultze/generic-oauth2/example/client/config"
	"github.com/svenschultze/generic-oauth2/pkg/client/rp"
	"github.com/svenschultze/generic-oauth2/pkg/client/rp/cli"
	httphelper "github.com/svenschultze/generic-oauth2/pkg/http"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	defaults := config.Defaults()
	if *configPath != "" {
		var err error
		defaults, err = config.Load(*configPath, defaults)
		if err != nil {
			logrus.Fatal(err)
		}
	}
	cfg, err := config.FromEnvVars(defaults)
	if err != nil {
		logrus.Fatal(err)
	}
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logger := slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		}),
	)
	requester, err := rp.NewRequester(append(cfg.RequesterOptions(), rp.WithLogger(logger))...)
	if err != nil {
		logrus.Fatalf("error creating requester %s", err.Error())
	}

	key := []byte(uuid.NewString()[:32])
	cookieHandler := httphelper.NewCookieHandler(key, key, httphelper.WithUnsecure())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logrus.Infof("starting pushed authorization request flow for %s", cfg.ClientID)
	logrus.Debugf("callback on %s", cfg.RedirectURL())
	resp, err := cli.PARFlow(ctx, requester, func(*http.Request) *rp.OAuth2Options {
		return cfg.Options()
	}, cookieHandler, cfg.CallbackPath, cfg.Port)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.WithFields(logrus.Fields{
		"state":         resp.State,
		"code_verifier": resp.CodeVerifier,
	}).Infof("received authorization code %s", resp.Code)
}
