package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/workoutlog/internal"
	"github.com/2beens/workoutlog/internal/config"
	"github.com/2beens/workoutlog/internal/logging"
	"github.com/2beens/workoutlog/pkg"
)

const (
	envAdminUsername     = "WORKOUTLOG_ADMIN_USERNAME"
	envAdminPasswordHash = "WORKOUTLOG_ADMIN_PASSWORD_HASH"
	envRedisPassword     = "WORKOUTLOG_REDIS_PASS"
	envPostgresPassword  = "WORKOUTLOG_POSTGRES_PASS"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and the prometheus metrics listener.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	log.Warnf("---->> running in [%s] environment", env)

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := ensureLogsDir(cfg.LogsPath); err != nil {
		return err
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	adminUsername := os.Getenv(envAdminUsername)
	adminPasswordHash := os.Getenv(envAdminPasswordHash)
	if adminUsername == "" || adminPasswordHash == "" {
		return fmt.Errorf("admin username and password not set. use %s and %s", envAdminUsername, envAdminPasswordHash)
	}

	redisPassword := os.Getenv(envRedisPassword)
	if redisPassword == "" {
		log.Warnf("redis password not set. use %s", envRedisPassword)
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			AdminUsername:           adminUsername,
			AdminPasswordHash:       adminPasswordHash,
			RedisPassword:           redisPassword,
			PostgresPassword:        os.Getenv(envPostgresPassword),
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		return fmt.Errorf("new server: %w", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
	return nil
}

// ensureLogsDir creates the parent dir of the log file, if a log file is used.
func ensureLogsDir(logsPath string) error {
	if logsPath == "" {
		return nil
	}

	dir := filepath.Dir(logsPath)
	exists, err := pkg.PathExists(dir, true)
	if err != nil {
		return fmt.Errorf("check logs dir: %w", err)
	}
	if exists {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create logs dir [%s]: %w", dir, err)
	}
	return nil
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	hash := strings.TrimSpace(pkg.BytesToString(stdout))
	if hash == "" {
		return "", errors.New("empty commit hash")
	}
	return hash, nil
}
