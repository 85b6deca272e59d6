package services

import (
	"fmt"
	"log"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
)

// defaultCatalog seeds catalogo_ejercicios on first start.
var defaultCatalog = []models.CatalogExercise{
	{Nombre: "Press Banca", Musculo: "Pecho"},
	{Nombre: "Press Inclinado Mancuernas", Musculo: "Pecho"},
	{Nombre: "Aperturas en Polea", Musculo: "Pecho"},
	{Nombre: "Fondos en Paralelas", Musculo: "Pecho"},
	{Nombre: "Dominadas", Musculo: "Espalda"},
	{Nombre: "Jalón al Pecho", Musculo: "Espalda"},
	{Nombre: "Remo con Barra", Musculo: "Espalda"},
	{Nombre: "Remo Gironda", Musculo: "Espalda"},
	{Nombre: "Peso Muerto", Musculo: "Espalda"},
	{Nombre: "Press Militar", Musculo: "Hombro"},
	{Nombre: "Elevaciones Laterales", Musculo: "Hombro"},
	{Nombre: "Face Pull", Musculo: "Hombro"},
	{Nombre: "Curl con Barra", Musculo: "Bíceps"},
	{Nombre: "Curl Martillo", Musculo: "Bíceps"},
	{Nombre: "Extensión de Tríceps en Polea", Musculo: "Tríceps"},
	{Nombre: "Press Francés", Musculo: "Tríceps"},
	{Nombre: "Sentadilla", Musculo: "Pierna"},
	{Nombre: "Prensa", Musculo: "Pierna"},
	{Nombre: "Zancadas", Musculo: "Pierna"},
	{Nombre: "Peso Muerto Rumano", Musculo: "Pierna"},
	{Nombre: "Curl Femoral", Musculo: "Pierna"},
	{Nombre: "Extensión de Cuádriceps", Musculo: "Pierna"},
	{Nombre: "Hip Thrust", Musculo: "Glúteo"},
	{Nombre: "Elevación de Gemelos", Musculo: "Gemelo"},
	{Nombre: "Plancha", Musculo: "Core"},
	{Nombre: "Rueda Abdominal", Musculo: "Core"},
}

// CatalogService exposes the canonical exercise catalog.
type CatalogService interface {
	List() ([]*models.CatalogExercise, error)
	SeedDefaults() error
}

type catalogService struct {
	repo repository.CatalogRepository
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) List() ([]*models.CatalogExercise, error) {
	list, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("%w: list catalog: %v", models.ErrPersistence, err)
	}
	return list, nil
}

// SeedDefaults inserts the built-in catalog, leaving existing names untouched.
func (s *catalogService) SeedDefaults() error {
	if err := s.repo.Seed(defaultCatalog); err != nil {
		return fmt.Errorf("%w: seed catalog: %v", models.ErrPersistence, err)
	}
	log.Printf("INFO: [CatalogService] Catalog seeded with %d default exercises.", len(defaultCatalog))
	return nil
}
