package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrNoIngredients = errors.New("No valid ingredients")

	// Clases de error para errors.Is; los detalles viajan en los tipos de abajo.
	ErrStorage       = errors.New("error de almacenamiento")
	ErrRecipeService = errors.New("error del servicio de recetas")
	ErrDetection     = errors.New("error del detector")
)

// StorageError fallo del almacén de inventario (conexión, escritura, lectura).
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("almacenamiento: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

// NewStorageError envuelve err; nil si err es nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// RecipeServiceError fallo de transporte o respuesta no exitosa de la API de recetas.
// Message lleva el mensaje del upstream tal cual.
type RecipeServiceError struct {
	StatusCode int // 0 si no hubo respuesta HTTP
	Message    string
	Err        error
}

func (e *RecipeServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("servicio de recetas HTTP %d: %s", e.StatusCode, e.Message)
	}
	return "servicio de recetas: " + e.Message
}

func (e *RecipeServiceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRecipeService}
	}
	return []error{ErrRecipeService, e.Err}
}

// DetectionError fallo del modelo de detección (no de la imagen: eso es ErrInvalidInput).
type DetectionError struct {
	Provider string
	Message  string
	Err      error
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("detector %s: %s", e.Provider, e.Message)
}

func (e *DetectionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDetection}
	}
	return []error{ErrDetection, e.Err}
}
