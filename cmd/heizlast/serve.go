package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Agrid-Dev/heizlast/internal/building"
	httpctrl "github.com/Agrid-Dev/heizlast/internal/controllers/http"
	modbusctrl "github.com/Agrid-Dev/heizlast/internal/controllers/modbus"
	mqttctrl "github.com/Agrid-Dev/heizlast/internal/controllers/mqtt"
	"github.com/Agrid-Dev/heizlast/internal/metrics"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the building model over the enabled controllers",
		Long:  `Builds the building from config and exposes it over HTTP, MQTT and/or Modbus TCP until interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, opts)
		},
	}
}

func serve(ctx context.Context, opts *options) error {
	cfg, log := opts.cfg, opts.log

	in, err := cfg.Input()
	if err != nil {
		return err
	}
	b, err := building.New(cfg.DeviceID, in)
	if err != nil {
		return err
	}
	m := metrics.New()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Controllers.HTTP.Enabled {
		srv := httpctrl.New(b, cfg.Controllers.HTTP.Addr, m, log)
		g.Go(func() error { return srv.Run(ctx) })
	}

	if c := cfg.Controllers.MQTT; c.Enabled {
		ctrl, err := mqttctrl.New(b, mqttctrl.Config{
			DeviceID:        cfg.DeviceID,
			BrokerURL:       c.BrokerURL,
			ClientID:        c.ClientID,
			BaseTopic:       c.BaseTopic,
			QoS:             c.QoS,
			RetainSnapshot:  c.RetainSnapshot,
			PublishInterval: c.PublishInterval,
			Username:        c.Username,
			Password:        c.Password,
		}, m, log)
		if err != nil {
			return err
		}
		g.Go(func() error { return ctrl.Run(ctx) })
	}

	if c := cfg.Controllers.MODBUS; c.Enabled {
		ctrl, err := modbusctrl.New(b, modbusctrl.Config{
			DeviceID: cfg.DeviceID,
			Addr:     c.Addr,
			UnitID:   c.UnitID,
		}, log)
		if err != nil {
			return err
		}
		g.Go(func() error { return ctrl.Run(ctx) })
	}

	snap := b.Get()
	log.Info("building ready",
		"device_id", snap.ID,
		"total_kw", snap.Result.Breakdown.Total,
		"http", cfg.Controllers.HTTP.Enabled,
		"mqtt", cfg.Controllers.MQTT.Enabled,
		"modbus", cfg.Controllers.MODBUS.Enabled,
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("controller exited", "error", err)
		return err
	}
	log.Info("stopped")
	return nil
}
