// Worker ejecuta los jobs periódicos: vencimiento de cotizaciones, devoluciones y
// facturas atrasadas, alertas de stock bajo y el resumen diario de ingresos.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/Chrisx-39/FormMaster/internal/bootstrap"
	"github.com/Chrisx-39/FormMaster/pkg/config"
	"github.com/Chrisx-39/FormMaster/pkg/logger"
)

func main() {
	once := flag.Bool("once", false, "ejecutar una pasada y salir")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "worker"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := bootstrap.New(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer container.Close()

	scheduler := container.Scheduler()
	if *once {
		for _, r := range scheduler.RunOnce(ctx, time.Now()) {
			log.Info().Str("job", r.Job).Int("processed", r.Processed).Int("failed", r.Failed).Bool("skipped", r.Skipped).Msg("job")
		}
		return
	}

	interval := time.Duration(cfg.Jobs.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	log.Info().Dur("interval", interval).Msg("worker iniciado")
	scheduler.Start(ctx, interval)
	log.Info().Msg("worker detenido")
}
