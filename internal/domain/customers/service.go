package customers

import (
	"context"
	"errors"
	"strings"
	"time"

	"kennel-console/internal/platform/validate"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = validate.ErrInvalid
	ErrNotFound     = errors.New("customer not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type Input struct {
	Name    string `json:"customer_name" validate:"required"`
	Phone   string `json:"customer_phone" validate:"required"`
	Address string `json:"customer_address" validate:"required"`
}

// FindOrCreate reutiliza el cliente si el teléfono ya existe; si no, lo crea.
// Opera sobre el repo recibido para poder correr dentro de una transacción.
func FindOrCreate(ctx context.Context, repo Repository, in Input, now time.Time) (Customer, bool, error) {
	in = normalize(in)
	if err := validate.Struct(in); err != nil {
		return Customer{}, false, err
	}

	existing, err := repo.GetByPhone(ctx, in.Phone)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Customer{}, false, err
	}

	c := Customer{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
	}
	if err := repo.Create(ctx, c); err != nil {
		return Customer{}, false, err
	}
	return c, true, nil
}

func (s *Service) FindOrCreate(ctx context.Context, in Input) (Customer, bool, error) {
	return FindOrCreate(ctx, s.repo, in, s.now())
}

// Lookup busca por teléfono (autocompletar del formulario de reserva).
func (s *Service) Lookup(ctx context.Context, phone string) (Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Customer{}, validate.Field("phone", "is required")
	}
	return s.repo.GetByPhone(ctx, phone)
}

func (s *Service) GetByID(ctx context.Context, id string) (Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Customer{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}

func normalize(in Input) Input {
	return Input{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
}
