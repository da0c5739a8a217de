package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kennel-console/internal/domain/customers"
	"kennel-console/internal/domain/kennels"
	"kennel-console/internal/platform/logger"
	"kennel-console/internal/platform/validate"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = validate.ErrInvalid
	ErrNotFound          = errors.New("reservation not found")
	ErrPetInfoNotFound   = errors.New("pet information not found")
	ErrBadState          = errors.New("invalid reservation state")
	ErrKennelUnavailable = errors.New("kennel not available")
)

type Service struct {
	store       Store
	log         logger.Logger
	now         func() time.Time
	defaultRate int64
}

type Options struct {
	Logger logger.Logger
	// Tarifa diaria que se usa si el operador no la edita en el checkout.
	DefaultPerDayRate int64
}

func NewService(store Store, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	rate := opts.DefaultPerDayRate
	if rate <= 0 {
		rate = 400
	}
	return &Service{
		store:       store,
		log:         log.With(map[string]any{"component": "reservations"}),
		now:         time.Now,
		defaultRate: rate,
	}
}

func (s *Service) DefaultPerDayRate() int64 { return s.defaultRate }

type CreateInput struct {
	CustomerName    string `json:"customer_name" validate:"required"`
	CustomerPhone   string `json:"customer_phone" validate:"required"`
	CustomerAddress string `json:"customer_address" validate:"required"`

	PetName  string `json:"pet_name" validate:"required"`
	PetBreed string `json:"pet_breed" validate:"required"`

	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`

	KennelIDs []string `json:"kennel_ids" validate:"min=1"`
	Services  Services `json:"-"`
}

// Create registra la reserva como pending y marca sus kennels como reserved.
// Todo corre en una transacción: si algo falla no queda nada escrito.
func (s *Service) Create(ctx context.Context, in CreateInput) (Reservation, error) {
	in = normalizeCreate(in)
	if err := validate.Struct(in); err != nil {
		return Reservation{}, err
	}
	if in.EndDate.Before(in.StartDate) {
		return Reservation{}, validate.Field("end_date", "must not be before start_date")
	}

	now := s.now()
	var out Reservation

	err := s.store.WithinTx(ctx, func(ctx context.Context, r Repos) error {
		cust, _, err := customers.FindOrCreate(ctx, r.Customers, customers.Input{
			Name:    in.CustomerName,
			Phone:   in.CustomerPhone,
			Address: in.CustomerAddress,
		}, now)
		if err != nil {
			return fmt.Errorf("customer: %w", err)
		}

		if err := ensureAvailable(ctx, r.Kennels, in.KennelIDs); err != nil {
			return err
		}

		res := Reservation{
			ID:         uuid.NewString(),
			CustomerID: cust.ID,
			PetName:    in.PetName,
			PetBreed:   in.PetBreed,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
			Status:     StatusPending,
			KennelIDs:  in.KennelIDs,
			Services:   in.Services,
			CreatedAt:  now,
		}
		if err := r.Reservations.Create(ctx, res); err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		if err := r.Kennels.SetStatus(ctx, res.KennelIDs, kennels.StatusReserved); err != nil {
			return fmt.Errorf("reserve kennels: %w", err)
		}

		out = res
		return nil
	})
	if err != nil {
		s.logFailure("create", "", err)
		return Reservation{}, err
	}

	s.log.Info("reservation created", map[string]any{
		"reservation_id": out.ID,
		"kennels":        len(out.KennelIDs),
	})
	return out, nil
}

// ensureAvailable exige que todos los kennels existan, estén available y fuera de Maintenance.
func ensureAvailable(ctx context.Context, repo kennels.Repository, ids []string) error {
	found, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load kennels: %w", err)
	}

	byID := make(map[string]kennels.Kennel, len(found))
	for _, k := range found {
		byID[k.ID] = k
	}
	for _, id := range ids {
		k, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: %s does not exist", ErrKennelUnavailable, id)
		}
		if k.Status != kennels.StatusAvailable {
			return fmt.Errorf("%w: kennel %d is %s", ErrKennelUnavailable, k.Number, k.Status)
		}
		if k.Group == kennels.MaintenanceGroup {
			return fmt.Errorf("%w: kennel %d is under maintenance", ErrKennelUnavailable, k.Number)
		}
	}
	return nil
}

type PetInfoInput struct {
	DietaryRequirements     string
	SpecialCareInstructions string
	MedicalNotes            string
}

// UpdateInput usa punteros para PATCH: nil = no tocar.
type UpdateInput struct {
	CustomerName    *string
	CustomerPhone   *string
	CustomerAddress *string

	PetName  *string
	PetBreed *string

	StartDate *time.Time
	EndDate   *time.Time

	Pickup *bool
	Groom  *bool
	Drop   *bool

	PetInfo *PetInfoInput
}

// Update corresponde al modal de edición: datos del cliente, de la estadía y ficha de la mascota.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (View, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return View{}, ErrNotFound
	}

	err := s.store.WithinTx(ctx, func(ctx context.Context, r Repos) error {
		res, err := r.Reservations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		cust, err := r.Customers.GetByID(ctx, res.CustomerID)
		if err != nil {
			return fmt.Errorf("load customer: %w", err)
		}

		verr := &validate.Error{Fields: map[string]string{}}
		setText := func(dst *string, v *string, field string) {
			if v == nil {
				return
			}
			t := strings.TrimSpace(*v)
			if t == "" {
				verr.Fields[field] = "is required"
				return
			}
			*dst = t
		}

		custChanged := in.CustomerName != nil || in.CustomerPhone != nil || in.CustomerAddress != nil
		setText(&cust.Name, in.CustomerName, "customer_name")
		setText(&cust.Phone, in.CustomerPhone, "customer_phone")
		setText(&cust.Address, in.CustomerAddress, "customer_address")
		setText(&res.PetName, in.PetName, "pet_name")
		setText(&res.PetBreed, in.PetBreed, "pet_breed")

		if in.StartDate != nil {
			res.StartDate = dateOnly(*in.StartDate)
		}
		if in.EndDate != nil {
			res.EndDate = dateOnly(*in.EndDate)
		}
		if res.EndDate.Before(res.StartDate) {
			verr.Fields["end_date"] = "must not be before start_date"
		}
		if in.Pickup != nil {
			res.Services.Pickup = *in.Pickup
		}
		if in.Groom != nil {
			res.Services.Groom = *in.Groom
		}
		if in.Drop != nil {
			res.Services.Drop = *in.Drop
		}
		if len(verr.Fields) > 0 {
			return verr
		}

		if custChanged {
			if err := r.Customers.Update(ctx, cust); err != nil {
				return fmt.Errorf("update customer: %w", err)
			}
		}
		if err := r.Reservations.Update(ctx, res); err != nil {
			return fmt.Errorf("update reservation: %w", err)
		}

		if in.PetInfo != nil {
			info, err := r.PetInfo.GetByReservation(ctx, res.ID)
			switch {
			case errors.Is(err, ErrPetInfoNotFound):
				info = PetInfo{ID: uuid.NewString(), ReservationID: res.ID}
				if len(res.KennelIDs) > 0 {
					info.KennelID = res.KennelIDs[0]
				}
			case err != nil:
				return fmt.Errorf("load pet info: %w", err)
			}
			info.DietaryRequirements = strings.TrimSpace(in.PetInfo.DietaryRequirements)
			info.SpecialCareInstructions = strings.TrimSpace(in.PetInfo.SpecialCareInstructions)
			info.MedicalNotes = strings.TrimSpace(in.PetInfo.MedicalNotes)
			if err := r.PetInfo.Upsert(ctx, info); err != nil {
				return fmt.Errorf("upsert pet info: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logFailure("update", id, err)
		return View{}, err
	}

	return s.Get(ctx, id)
}

func (s *Service) PetInfo(ctx context.Context, reservationID string) (PetInfo, error) {
	return s.store.Repos().PetInfo.GetByReservation(ctx, strings.TrimSpace(reservationID))
}

func (s *Service) logFailure(workflow, id string, err error) {
	// Errores de validación/estado son del operador, no del store.
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrBadState) ||
		errors.Is(err, ErrKennelUnavailable) || errors.Is(err, ErrNotFound) {
		s.log.Debug("reservation workflow rejected", map[string]any{
			"workflow": workflow, "reservation_id": id, "error": err,
		})
		return
	}
	s.log.Error("reservation workflow failed", map[string]any{
		"workflow": workflow, "reservation_id": id, "error": err,
	})
}

func normalizeCreate(in CreateInput) CreateInput {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.CustomerAddress = strings.TrimSpace(in.CustomerAddress)
	in.PetName = strings.TrimSpace(in.PetName)
	in.PetBreed = strings.TrimSpace(in.PetBreed)
	if !in.StartDate.IsZero() {
		in.StartDate = dateOnly(in.StartDate)
	}
	if !in.EndDate.IsZero() {
		in.EndDate = dateOnly(in.EndDate)
	}

	seen := map[string]struct{}{}
	ids := make([]string, 0, len(in.KennelIDs))
	for _, id := range in.KennelIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	in.KennelIDs = ids
	return in
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
