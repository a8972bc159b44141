//go:build tools

package main

// Dependencias de herramientas de build (no se compilan con la app).
// swag genera docs/swagger.json que sirve el middleware de Swagger UI.
import (
	_ "github.com/swaggo/swag"
)
