// issue_token emite un JWT firmado con JWT_SECRET para probar las rutas protegidas.
//
// Uso: go run ./cmd/issue_token -sub cocina -exp 60
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Nevera-api/pkg/config"
	"github.com/jhoicas/Nevera-api/pkg/jwt"
)

func main() {
	sub := flag.String("sub", "nevera", "subject del token")
	exp := flag.Int("exp", 0, "minutos de validez (0 = JWT_EXPIRATION)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET vacío: la API corre sin autenticación")
		os.Exit(1)
	}
	minutes := cfg.JWT.Expiration
	if *exp > 0 {
		minutes = *exp
	}

	token, err := jwt.Generate(cfg.JWT.Secret, *sub, cfg.JWT.Issuer, minutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Firmar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
