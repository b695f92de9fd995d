package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/contract-emulator/internal/clock"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/address"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/contract/builtin"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/export"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/genesis"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/repository/clickhouse"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/service"
	"github.com/goodnatureofminers/contract-emulator/internal/metrics"
	"github.com/goodnatureofminers/contract-emulator/pkg/batcher"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

type config struct {
	Genesis          string        `long:"genesis" env:"EMULATOR_GENESIS" description:"path to a TOML genesis file"`
	Blocks           uint64        `long:"blocks" env:"EMULATOR_BLOCKS" description:"number of blocks to forge after genesis" default:"10"`
	BlocksPerSecond  int           `long:"blocks-per-second" env:"EMULATOR_BLOCKS_PER_SECOND" description:"forge pace, 0 forges as fast as possible" default:"1"`
	AddressPrefix    string        `long:"address-prefix" env:"EMULATOR_ADDRESS_PREFIX" description:"text prefix of account addresses"`
	HandshakeTimeout time.Duration `long:"handshake-timeout" env:"EMULATOR_HANDSHAKE_TIMEOUT" description:"how long to wait for a contract to yield" default:"30s"`
	Network          model.Network `long:"network" env:"EMULATOR_NETWORK" description:"network label for metrics and exported rows" default:"emulator"`
	MetricsAddr      string        `long:"metrics-addr" env:"EMULATOR_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	Linger           time.Duration `long:"linger" env:"EMULATOR_LINGER" description:"keep serving metrics this long after the last block"`

	ClickhouseDSN       string        `long:"clickhouse-dsn" env:"EMULATOR_CLICKHOUSE_DSN" description:"ClickHouse DSN, export is disabled when empty"`
	ExportFlushSize     int           `long:"export-flush-size" env:"EMULATOR_EXPORT_FLUSH_SIZE" description:"blocks per export flush" default:"100"`
	ExportFlushInterval time.Duration `long:"export-flush-interval" env:"EMULATOR_EXPORT_FLUSH_INTERVAL" description:"max time a block waits for export" default:"5s"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("contract emulator failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	catalog := builtin.Catalog()
	opts := []service.Option{
		service.WithHandshakeTimeout(cfg.HandshakeTimeout),
		service.WithMetrics(metrics.NewEmulator(cfg.Network)),
	}

	if cfg.ClickhouseDSN != "" {
		writer, err := newExportWriter(ctx, cfg, logger)
		if err != nil {
			return err
		}
		writer.Start(ctx)
		defer writer.Stop()
		opts = append(opts, service.WithBlockSink(writer))
	}

	emu, err := service.New(address.NewBase58Decoder(cfg.AddressPrefix), catalog, logger, opts...)
	if err != nil {
		return fmt.Errorf("init emulator: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.HandshakeTimeout)
		defer cancel()
		if err := emu.Close(closeCtx); err != nil {
			logger.Error("failed to close emulator", zap.Error(err))
		}
	}()

	if cfg.Genesis != "" {
		if err := applyGenesis(cfg.Genesis, catalog.Types(), emu); err != nil {
			return err
		}
		logger.Info("genesis applied", zap.String("path", cfg.Genesis))
	}

	if err := forge(ctx, emu, cfg, logger); err != nil {
		return err
	}

	for _, acc := range emu.Accounts() {
		fields := []zap.Field{
			zap.Stringer("account", acc.Ref),
			zap.Int64("balance", acc.Balance),
		}
		if acc.IsContract() {
			fields = append(fields,
				zap.String("contract", acc.Contract.Type()),
				zap.Bool("sleeping", acc.Contract.Sleeping()),
			)
		}
		logger.Info("final balance", fields...)
	}
	logger.Info("forging finished",
		zap.Int("blocks", len(emu.Blocks())),
		zap.Int64("total_balance", emu.TotalBalance()),
	)

	if cfg.Linger > 0 {
		logger.Info("lingering for metrics scrape", zap.Duration("linger", cfg.Linger))
		if err := clock.Sleep(ctx, cfg.Linger); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}

func forge(ctx context.Context, emu *service.Emulator, cfg config, logger *zap.Logger) error {
	limiter := ratelimit.NewUnlimited()
	if cfg.BlocksPerSecond > 0 {
		limiter = ratelimit.New(cfg.BlocksPerSecond)
	}

	for i := uint64(0); i < cfg.Blocks; i++ {
		limiter.Take()
		if ctx.Err() != nil {
			logger.Info("forging interrupted", zap.Uint64("forged", i))
			return nil
		}

		block, err := emu.AdvanceBlock(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("advance block: %w", err)
		}
		logger.Info("block forged",
			zap.Uint64("height", block.Height),
			zap.Int("txs", len(block.Transactions)),
			zap.Stringer("hash", block.Hash),
		)
	}
	return nil
}

func applyGenesis(path string, knownTypes []string, target genesis.Target) error {
	file, err := genesis.Load(path)
	if err != nil {
		return err
	}
	if err := file.Validate(knownTypes); err != nil {
		return fmt.Errorf("invalid genesis %s: %w", path, err)
	}
	if err := file.Apply(target); err != nil {
		return fmt.Errorf("apply genesis %s: %w", path, err)
	}
	return nil
}

func newExportWriter(ctx context.Context, cfg config, logger *zap.Logger) (*export.Writer, error) {
	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}

	err = waitReady(ctx, repo.Ping, connectPolicy(), logger)
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("connect clickhouse: %w", err)
	}

	return export.NewWriter(cfg.Network, repo, metrics.NewExporter(cfg.Network), logger, batcher.Config{
		FlushSize:     cfg.ExportFlushSize,
		FlushInterval: cfg.ExportFlushInterval,
	})
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
