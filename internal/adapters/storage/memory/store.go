package memory

import (
	"context"
	"sync"
	"time"

	"kennel-console/internal/domain/customers"
	"kennel-console/internal/domain/feeding"
	"kennel-console/internal/domain/kennels"
	"kennel-console/internal/domain/reservations"
	"kennel-console/internal/platform/broadcast"
)

// tables es todo el estado. Los valores se guardan por copia: ningún slice
// interno se comparte con quien llama.
type tables struct {
	kennels      map[string]kennels.Kennel
	customers    map[string]customers.Customer
	reservations map[string]reservations.Reservation
	petInfo      map[string]reservations.PetInfo // por reservation id
	history      []reservations.Historical
	bills        []reservations.Bill
	analytics    []reservations.AnalyticsRow
	feeding      []feeding.Record
}

func newTables() tables {
	return tables{
		kennels:      make(map[string]kennels.Kennel),
		customers:    make(map[string]customers.Customer),
		reservations: make(map[string]reservations.Reservation),
		petInfo:      make(map[string]reservations.PetInfo),
	}
}

func (t tables) clone() tables {
	out := newTables()
	for k, v := range t.kennels {
		out.kennels[k] = v
	}
	for k, v := range t.customers {
		out.customers[k] = v
	}
	for k, v := range t.reservations {
		out.reservations[k] = v
	}
	for k, v := range t.petInfo {
		out.petInfo[k] = v
	}
	out.history = append(out.history, t.history...)
	out.bills = append(out.bills, t.bills...)
	out.analytics = append(out.analytics, t.analytics...)
	out.feeding = append(out.feeding, t.feeding...)
	return out
}

// Store es el backend en memoria (dev/tests). Implementa reservations.Store
// y kennels.ChangeFeed.
//
// Las transacciones se serializan con txMu y hacen rollback restaurando un
// snapshot. Las escrituras fuera de transacción también toman txMu, así que
// nunca se mezclan con una transacción en curso. Las lecturas no esperan.
type Store struct {
	txMu sync.Mutex

	mu sync.RWMutex
	t  tables

	feed *broadcast.Broadcaster[kennels.Change]
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		t:    newTables(),
		feed: broadcast.New[kennels.Change](broadcast.DefaultBuffer),
		now:  time.Now,
	}
}

// session es la vista de los repos: fuera de tx (tx == nil) o dentro de una.
type session struct {
	s  *Store
	tx *txState
}

type txState struct {
	kennelChanges []kennels.ChangeOp
}

func (s *Store) Repos() reservations.Repos {
	return session{s: s}.repos()
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r reservations.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.t.clone()
	s.mu.RUnlock()

	tx := &txState{}
	if err := fn(ctx, session{s: s, tx: tx}.repos()); err != nil {
		s.mu.Lock()
		s.t = snapshot
		s.mu.Unlock()
		return err
	}

	// commit: los cambios ya están aplicados; solo falta avisar.
	for _, op := range tx.kennelChanges {
		s.feed.Publish(kennels.Change{Op: op, At: s.now()})
	}
	return nil
}

// Subscribe implementa kennels.ChangeFeed.
func (s *Store) Subscribe(ctx context.Context) (<-chan kennels.Change, error) {
	return s.feed.Subscribe(ctx), nil
}

func (ss session) repos() reservations.Repos {
	return reservations.Repos{
		Kennels:      &kennelRepo{ss},
		Customers:    &customerRepo{ss},
		Reservations: &reservationRepo{ss},
		PetInfo:      &petInfoRepo{ss},
		History:      &historyRepo{ss},
		Bills:        &billRepo{ss},
		Analytics:    &analyticsRepo{ss},
		Feeding:      &feedingRepo{ss},
	}
}

func (ss session) read(fn func(t *tables)) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()
	fn(&ss.s.t)
}

// write aplica fn. Fuera de tx, si fn falla, el estado previo se restaura.
func (ss session) write(fn func(t *tables) error) error {
	if ss.tx == nil {
		ss.s.txMu.Lock()
		defer ss.s.txMu.Unlock()
	}

	ss.s.mu.Lock()
	defer ss.s.mu.Unlock()

	if ss.tx != nil {
		return fn(&ss.s.t)
	}

	before := ss.s.t.clone()
	if err := fn(&ss.s.t); err != nil {
		ss.s.t = before
		return err
	}
	return nil
}

// kennelChanged publica ya mismo o, dentro de tx, al hacer commit.
func (ss session) kennelChanged(op kennels.ChangeOp) {
	if ss.tx != nil {
		ss.tx.kennelChanges = append(ss.tx.kennelChanges, op)
		return
	}
	ss.s.feed.Publish(kennels.Change{Op: op, At: ss.s.now()})
}
