// automation_token emite el JWT de servicio que usa el crawler para pedir códigos TOTP.
//
// Uso: go run ./cmd/automation_token -subject crawler-01 [-minutes 43200]
// El secreto y el issuer salen de AUTOMATION_JWT_SECRET y AUTOMATION_JWT_ISSUER.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/sigorta-api/pkg/config"
	"github.com/jhoicas/sigorta-api/pkg/jwt"
	"github.com/jhoicas/sigorta-api/pkg/logger"
)

func main() {
	subject := flag.String("subject", "", "identificador del proceso (p.ej. crawler-01)")
	minutes := flag.Int("minutes", 0, "validez en minutos (0 = AUTOMATION_JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("automation_token")

	if !cfg.Automation.Enabled() {
		log.Fatal().Msg("AUTOMATION_JWT_SECRET no configurado")
	}
	if *subject == "" {
		flag.Usage()
		os.Exit(2)
	}
	exp := *minutes
	if exp <= 0 {
		exp = cfg.Automation.Expiration
	}

	token, err := jwt.Generate(cfg.Automation.Secret, *subject, cfg.Automation.Issuer, []string{jwt.ScopeTOTP}, exp)
	if err != nil {
		log.Fatal().Err(err).Msg("generar token")
	}
	log.Info().Str("subject", *subject).Int("minutes", exp).Msg("token emitido")
	fmt.Println(token)
}
