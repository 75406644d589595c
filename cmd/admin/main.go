// admin tareas de administración contra la base configurada (DB_* / DATABASE_URL).
//
// Uso:
//
//	go run ./cmd/admin create-admin -email admin@lm.co -password secreta123 [-name "Admin"]
//	go run ./cmd/admin set-role -email ana@lm.co -role admin
//	go run ./cmd/admin import-products [-encoding latin1] productos.csv
//
// El CSV de productos lleva encabezado: sku,nombre,descripcion,categoria,precio,actual,minimo,maximo.
// Las exportaciones de Excel en español suelen venir en ISO-8859-1; usar -encoding latin1.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lm-inventario/internal/application/activity"
	"github.com/jhoicas/lm-inventario/internal/application/auth"
	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/application/usecase"
	"github.com/jhoicas/lm-inventario/internal/domain"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/lm-inventario/pkg/config"
	"github.com/jhoicas/lm-inventario/pkg/logger"
)

// actorCLI aparece como autor en la bitácora.
var actorCLI = entity.Actor{ID: "cli", DisplayName: "cmd/admin", Role: entity.RoleAdmin}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "admin"}).Zerolog()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()
	if err := postgres.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		fail("migraciones", err)
	}

	users := postgres.NewUserRepository(pool)
	activityUC := activity.NewUseCase(postgres.NewActivityLogRepository(pool), cfg.App.Location())

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "create-admin":
		err = createAdmin(ctx, auth.NewAuthUseCase(users, activityUC, auth.JWTConfig{}, log), args)
	case "set-role":
		err = setRole(ctx, users, usecase.NewUserUseCase(users, activityUC, log), args)
	case "import-products":
		err = importProducts(ctx, usecase.NewProductUseCase(postgres.NewProductRepository(pool), activityUC, log), log, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fail(cmd, err)
	}
}

func createAdmin(ctx context.Context, uc *auth.AuthUseCase, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	email := fs.String("email", "", "email del administrador")
	password := fs.String("password", "", "contraseña (mínimo 8 caracteres)")
	name := fs.String("name", "", "nombre visible")
	_ = fs.Parse(args)

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: *email, Password: *password, Name: *name, Role: entity.RoleAdmin})
	if err != nil {
		return err
	}
	fmt.Printf("Administrador creado: %s (%s)\n", u.Email, u.ID)
	return nil
}

type userFinder interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

func setRole(ctx context.Context, users userFinder, uc *usecase.UserUseCase, args []string) error {
	fs := flag.NewFlagSet("set-role", flag.ExitOnError)
	email := fs.String("email", "", "email del usuario")
	role := fs.String("role", entity.RoleAdmin, "admin | operador")
	_ = fs.Parse(args)

	u, err := users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(*email)))
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	out, err := uc.UpdateRole(ctx, actorCLI, u.ID, *role)
	if err != nil {
		return err
	}
	fmt.Printf("Rol de %s: %s\n", out.Email, out.Role)
	return nil
}

func importProducts(ctx context.Context, uc *usecase.ProductUseCase, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("import-products", flag.ExitOnError)
	encoding := fs.String("encoding", "utf8", "utf8 | latin1")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("falta la ruta del CSV")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := readProductsCSV(f, *encoding)
	if err != nil {
		return err
	}
	var created, skipped int
	for _, row := range rows {
		_, err := uc.Create(ctx, actorCLI, row)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
			log.Info().Str("sku", row.SKU).Msg("SKU ya existe, se omite")
		case err != nil:
			return fmt.Errorf("producto %s: %w", row.SKU, err)
		default:
			created++
		}
	}
	fmt.Printf("Importados %d productos (%d omitidos por SKU existente)\n", created, skipped)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: admin <create-admin|set-role|import-products> [opciones]")
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}
