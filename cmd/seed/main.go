// Seed crea el administrador inicial y, opcionalmente, importa el catálogo de materiales.
//
//	SEED_ADMIN_EMAIL=admin@formmaster.local SEED_ADMIN_PASSWORD=... go run ./cmd/seed -materials catalogo.csv -latin1
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/Chrisx-39/FormMaster/internal/application/dto"
	"github.com/Chrisx-39/FormMaster/internal/bootstrap"
	"github.com/Chrisx-39/FormMaster/internal/domain"
	"github.com/Chrisx-39/FormMaster/internal/domain/policy"
	"github.com/Chrisx-39/FormMaster/internal/infrastructure/catalog"
	"github.com/Chrisx-39/FormMaster/pkg/config"
	"github.com/Chrisx-39/FormMaster/pkg/logger"
)

func main() {
	materialsPath := flag.String("materials", "", "CSV con el catálogo de materiales")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	cfg.DB.AutoMigrate = true

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})
	ctx := context.Background()

	container, err := bootstrap.New(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer container.Close()

	if email := os.Getenv("SEED_ADMIN_EMAIL"); email != "" {
		admin, err := container.Auth.Bootstrap(ctx, dto.CreateUserRequest{
			Email:    email,
			Password: os.Getenv("SEED_ADMIN_PASSWORD"),
			Name:     "Administrador",
		})
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			log.Info().Str("email", email).Msg("administrador ya existe")
		case err != nil:
			log.Fatal().Err(err).Msg("crear administrador")
		default:
			log.Info().Str("id", admin.ID).Str("email", admin.Email).Msg("administrador creado")
		}
	}

	if *materialsPath == "" {
		return
	}
	f, err := os.Open(*materialsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir catálogo")
	}
	defer f.Close()

	list, err := catalog.ReadMaterials(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	created, skipped := 0, 0
	for _, m := range list {
		if _, err := container.Materials.Create(ctx, policy.System, m); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			log.Error().Err(err).Str("code", m.Code).Msg("crear material")
			continue
		}
		created++
	}
	log.Info().Int("creados", created).Int("existentes", skipped).Int("filas", len(list)).Msg("catálogo importado")
}
