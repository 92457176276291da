//go:build unit || e2e

// Package memstore is an in-memory UnitOfWork for usecase tests. A failed
// Within rolls every change of that call back.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"shop-reservation/internal/domain/catalog"
	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/domain/schedule"
	"shop-reservation/internal/infra"
	"shop-reservation/internal/pkg/clock"
	"shop-reservation/internal/pkg/timegrid"
	"shop-reservation/internal/usecase/queries"
	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type Job struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type idemKey struct {
	key   uuid.UUID
	actor string
}

type linkKey struct {
	resourceID uuid.UUID
	serviceID  uuid.UUID
}

type state struct {
	shops        map[uuid.UUID][]byte
	services     map[uuid.UUID]catalog.Service
	resources    map[uuid.UUID]catalog.Resource
	links        map[linkKey]catalog.Link
	rules        []schedule.Rule
	blocks       map[uuid.UUID]schedule.Block
	reservations map[uuid.UUID]reservation.Record
	idempotency  map[idemKey]shared.IdempotencyRecord
	jobs         []Job
	noShows      map[uuid.UUID]int64
}

func (s state) clone() state {
	return state{
		shops:        cloneMap(s.shops),
		services:     cloneMap(s.services),
		resources:    cloneMap(s.resources),
		links:        cloneMap(s.links),
		rules:        slices.Clone(s.rules),
		blocks:       cloneMap(s.blocks),
		reservations: cloneMap(s.reservations),
		idempotency:  cloneMap(s.idempotency),
		jobs:         slices.Clone(s.jobs),
		noShows:      cloneMap(s.noShows),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type Store struct {
	mu     sync.Mutex
	st     state
	faults map[string]error
	now    func() time.Time

	// Locks counts LockResource calls per resource.
	Locks map[uuid.UUID]int
}

var (
	_ shared.UnitOfWork           = (*Store)(nil)
	_ shared.Tx                   = (*Store)(nil)
	_ queries.ReservationViewRepo = (*Store)(nil)
)

func New() *Store {
	return &Store{
		st: state{
			shops:        map[uuid.UUID][]byte{},
			services:     map[uuid.UUID]catalog.Service{},
			resources:    map[uuid.UUID]catalog.Resource{},
			links:        map[linkKey]catalog.Link{},
			blocks:       map[uuid.UUID]schedule.Block{},
			reservations: map[uuid.UUID]reservation.Record{},
			idempotency:  map[idemKey]shared.IdempotencyRecord{},
			noShows:      map[uuid.UUID]int64{},
		},
		faults: map[string]error{},
		now:    time.Now,
		Locks:  map[uuid.UUID]int{},
	}
}

// UseClock makes expiry checks follow c instead of the wall clock.
func (s *Store) UseClock(c clock.Clock) {
	s.now = c.Now
}

// Fail makes every later call of op (e.g. "Reservations.Create") return err.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	if err, ok := s.faults[op]; ok {
		return infra.WrapRepoErr(op, err)
	}
	return nil
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	saved := s.st.clone()
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.st = saved
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, s)
}

func (s *Store) Shops() shared.ShopRepository                 { return shopRepo{s} }
func (s *Store) Services() shared.ServiceRepository           { return serviceRepo{s} }
func (s *Store) Resources() shared.ResourceRepository         { return resourceRepo{s} }
func (s *Store) Links() shared.LinkRepository                 { return linkRepo{s} }
func (s *Store) Schedules() shared.ScheduleRepository         { return scheduleRepo{s} }
func (s *Store) Reservations() shared.ReservationRepository   { return reservationRepo{s} }
func (s *Store) Idempotency() shared.IdempotencyRepository    { return idempotencyRepo{s} }
func (s *Store) Notifications() shared.NotificationRepository { return notificationRepo{s} }
func (s *Store) Users() shared.UserRepository                 { return userRepo{s} }

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

// ------------------------------------------------------------
// seeding and inspection
// ------------------------------------------------------------

// AddShop registers a shop with the given raw settings blob (nil for none).
func (s *Store) AddShop(shopID uuid.UUID, settings []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.shops[shopID] = settings
}

func (s *Store) AddService(svc *catalog.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.services[svc.ID()] = *svc
}

func (s *Store) AddResource(r *catalog.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.resources[r.ID()] = *r
}

func (s *Store) AddLink(l catalog.Link) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.links[linkKey{l.ResourceID, l.ServiceID}] = l
}

func (s *Store) AddRule(r schedule.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.rules = append(s.st.rules, r)
}

func (s *Store) AddBlock(b schedule.Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.blocks[b.ID()] = b
}

func (s *Store) AddReservation(r *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.reservations[r.ID()] = r.Record()
}

func (s *Store) Reservation(id uuid.UUID) (*reservation.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.st.reservations[id]
	if !ok {
		return nil, false
	}
	return reservation.ReconstructReservation(rec), true
}

func (s *Store) ReservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.reservations)
}

func (s *Store) Service(id uuid.UUID) (*catalog.Service, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.st.services[id]
	if !ok {
		return nil, false
	}
	return &svc, true
}

func (s *Store) Resource(id uuid.UUID) (*catalog.Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.st.resources[id]
	if !ok {
		return nil, false
	}
	return &r, true
}

func (s *Store) LinksOf(resourceID uuid.UUID) []catalog.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []catalog.Link
	for k, l := range s.st.links {
		if k.resourceID == resourceID {
			out = append(out, l)
		}
	}
	return out
}

func (s *Store) Rules() []schedule.Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.rules)
}

func (s *Store) BlockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.blocks)
}

func (s *Store) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.jobs)
}

func (s *Store) NoShowCount(userID uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.noShows[userID]
}

func (s *Store) SettingsBlob(shopID uuid.UUID) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.shops[shopID]
}

func (s *Store) IdempotencyRecord(key uuid.UUID, actorKey string) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.st.idempotency[idemKey{key, actorKey}]
	return rec, ok
}

// ------------------------------------------------------------
// shops
// ------------------------------------------------------------

type shopRepo struct{ s *Store }

func (r shopRepo) GetSettings(_ context.Context, shopID uuid.UUID) ([]byte, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	raw, ok := r.s.st.shops[shopID]
	if !ok {
		return nil, notFound("shop")
	}
	return raw, nil
}

func (r shopRepo) UpdateSettings(_ context.Context, shopID uuid.UUID, raw []byte) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Shops.UpdateSettings"); err != nil {
		return err
	}
	if _, ok := r.s.st.shops[shopID]; !ok {
		return notFound("shop")
	}
	r.s.st.shops[shopID] = raw
	return nil
}

// ------------------------------------------------------------
// catalog
// ------------------------------------------------------------

type serviceRepo struct{ s *Store }

func (r serviceRepo) Create(_ context.Context, svc *catalog.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.services[svc.ID()] = *svc
	return nil
}

func (r serviceRepo) Get(_ context.Context, shopID, id uuid.UUID) (*catalog.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.st.services[id]
	if !ok || svc.ShopID() != shopID {
		return nil, notFound("service")
	}
	return &svc, nil
}

func (r serviceRepo) List(_ context.Context, shopID uuid.UUID, activeOnly bool) ([]*catalog.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*catalog.Service
	for _, svc := range r.s.st.services {
		if svc.ShopID() != shopID || (activeOnly && !svc.IsActive()) {
			continue
		}
		cp := svc
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessCatalog(out[i].SortOrder(), out[i].Name(), out[i].ID(), out[j].SortOrder(), out[j].Name(), out[j].ID())
	})
	return out, nil
}

func (r serviceRepo) Update(_ context.Context, svc *catalog.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.services[svc.ID()]
	if !ok || cur.ShopID() != svc.ShopID() {
		return notFound("service")
	}
	r.s.st.services[svc.ID()] = *svc
	return nil
}

func (r serviceRepo) Delete(_ context.Context, shopID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.services[id]
	if !ok || cur.ShopID() != shopID {
		return notFound("service")
	}
	delete(r.s.st.services, id)
	for k := range r.s.st.links {
		if k.serviceID == id {
			delete(r.s.st.links, k)
		}
	}
	return nil
}

func (r serviceRepo) CountReservations(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, rec := range r.s.st.reservations {
		if rec.ServiceID == id {
			n++
		}
	}
	return n, nil
}

type resourceRepo struct{ s *Store }

func (r resourceRepo) Create(_ context.Context, res *catalog.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.resources[res.ID()] = *res
	return nil
}

func (r resourceRepo) Get(_ context.Context, shopID, id uuid.UUID) (*catalog.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.st.resources[id]
	if !ok || res.ShopID() != shopID {
		return nil, notFound("resource")
	}
	return &res, nil
}

func (r resourceRepo) List(_ context.Context, shopID uuid.UUID, activeOnly bool) ([]*catalog.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*catalog.Resource
	for _, res := range r.s.st.resources {
		if res.ShopID() != shopID || (activeOnly && !res.IsActive()) {
			continue
		}
		cp := res
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessCatalog(out[i].SortOrder(), out[i].Name(), out[i].ID(), out[j].SortOrder(), out[j].Name(), out[j].ID())
	})
	return out, nil
}

func (r resourceRepo) Update(_ context.Context, res *catalog.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.resources[res.ID()]
	if !ok || cur.ShopID() != res.ShopID() {
		return notFound("resource")
	}
	r.s.st.resources[res.ID()] = *res
	return nil
}

func (r resourceRepo) Delete(_ context.Context, shopID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.resources[id]
	if !ok || cur.ShopID() != shopID {
		return notFound("resource")
	}
	delete(r.s.st.resources, id)
	for k := range r.s.st.links {
		if k.resourceID == id {
			delete(r.s.st.links, k)
		}
	}
	return nil
}

func (r resourceRepo) CountReservations(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, rec := range r.s.st.reservations {
		if rec.ResourceID != nil && *rec.ResourceID == id {
			n++
		}
	}
	return n, nil
}

type linkRepo struct{ s *Store }

func (r linkRepo) DeleteByResource(_ context.Context, resourceID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k := range r.s.st.links {
		if k.resourceID == resourceID {
			delete(r.s.st.links, k)
		}
	}
	return nil
}

func (r linkRepo) Insert(_ context.Context, l catalog.Link) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := linkKey{l.ResourceID, l.ServiceID}
	if _, ok := r.s.st.links[k]; ok {
		return infra.WrapRepoErr("link already exists", nil, infra.KindDuplicateKey)
	}
	r.s.st.links[k] = l
	return nil
}

func (r linkRepo) GetActive(_ context.Context, shopID, resourceID, serviceID uuid.UUID) (*catalog.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.st.links[linkKey{resourceID, serviceID}]
	res, resOK := r.s.st.resources[resourceID]
	if !ok || !resOK || res.ShopID() != shopID || !l.IsActive || !res.IsActive() {
		return nil, notFound("resource service link")
	}
	return &l, nil
}

func (r linkRepo) ListByService(_ context.Context, shopID, serviceID uuid.UUID, activeOnly bool) ([]shared.LinkedResource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []shared.LinkedResource
	for k, l := range r.s.st.links {
		if k.serviceID != serviceID {
			continue
		}
		res, ok := r.s.st.resources[k.resourceID]
		if !ok || res.ShopID() != shopID {
			continue
		}
		if activeOnly && (!l.IsActive || !res.IsActive()) {
			continue
		}
		cp := res
		out = append(out, shared.LinkedResource{Resource: &cp, Link: l})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Resource, out[j].Resource
		return lessCatalog(a.SortOrder(), a.Name(), a.ID(), b.SortOrder(), b.Name(), b.ID())
	})
	return out, nil
}

func (r linkRepo) ListByResource(_ context.Context, shopID, resourceID uuid.UUID) ([]shared.LinkedService, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []shared.LinkedService
	for k, l := range r.s.st.links {
		if k.resourceID != resourceID {
			continue
		}
		svc, ok := r.s.st.services[k.serviceID]
		if !ok || svc.ShopID() != shopID {
			continue
		}
		cp := svc
		out = append(out, shared.LinkedService{Service: &cp, Link: l})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Service, out[j].Service
		return lessCatalog(a.SortOrder(), a.Name(), a.ID(), b.SortOrder(), b.Name(), b.ID())
	})
	return out, nil
}

func (r linkRepo) CountServicesInShop(_ context.Context, shopID uuid.UUID, serviceIDs []uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, id := range serviceIDs {
		if svc, ok := r.s.st.services[id]; ok && svc.ShopID() == shopID {
			n++
		}
	}
	return n, nil
}

func lessCatalog(aOrder int, aName string, aID uuid.UUID, bOrder int, bName string, bID uuid.UUID) bool {
	if aOrder != bOrder {
		return aOrder < bOrder
	}
	if aName != bName {
		return aName < bName
	}
	return aID.String() < bID.String()
}

// ------------------------------------------------------------
// schedule
// ------------------------------------------------------------

type scheduleRepo struct{ s *Store }

func sameScope(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (r scheduleRepo) DeleteRules(_ context.Context, shopID uuid.UUID, resourceID *uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.rules = slices.DeleteFunc(r.s.st.rules, func(rule schedule.Rule) bool {
		return rule.ShopID() == shopID && sameScope(rule.ResourceID(), resourceID)
	})
	return nil
}

func (r scheduleRepo) InsertRule(_ context.Context, rule schedule.Rule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Schedules.InsertRule"); err != nil {
		return err
	}
	r.s.st.rules = append(r.s.st.rules, rule)
	return nil
}

func (r scheduleRepo) ListRules(_ context.Context, shopID uuid.UUID, resourceID *uuid.UUID) ([]schedule.Rule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sortedRules(func(rule schedule.Rule) bool {
		return rule.ShopID() == shopID && rule.IsActive() && sameScope(rule.ResourceID(), resourceID)
	}), nil
}

func (r scheduleRepo) ListAllActiveRules(_ context.Context, shopID uuid.UUID) ([]schedule.Rule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sortedRules(func(rule schedule.Rule) bool {
		return rule.ShopID() == shopID && rule.IsActive()
	}), nil
}

func (s *Store) sortedRules(keep func(schedule.Rule) bool) []schedule.Rule {
	var out []schedule.Rule
	for _, rule := range s.st.rules {
		if keep(rule) {
			out = append(out, rule)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DayOfWeek() != out[j].DayOfWeek() {
			return out[i].DayOfWeek() < out[j].DayOfWeek()
		}
		return out[i].StartMinute() < out[j].StartMinute()
	})
	return out
}

func (r scheduleRepo) CreateBlock(_ context.Context, b schedule.Block) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.blocks[b.ID()] = b
	return nil
}

func (r scheduleRepo) ListBlocks(_ context.Context, shopID uuid.UUID, f schedule.BlockFilter) ([]schedule.Block, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []schedule.Block
	for _, b := range r.s.st.blocks {
		if b.ShopID() == shopID && f.Matches(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start().Equal(out[j].Start()) {
			return out[i].Start().Before(out[j].Start())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

func (r scheduleRepo) DeleteBlock(_ context.Context, shopID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.st.blocks[id]
	if !ok || b.ShopID() != shopID {
		return notFound("block")
	}
	delete(r.s.st.blocks, id)
	return nil
}

// ------------------------------------------------------------
// reservations
// ------------------------------------------------------------

type reservationRepo struct{ s *Store }

func holdsSlot(rec reservation.Record) bool {
	return rec.Status == reservation.StatusPending || rec.Status == reservation.StatusConfirmed
}

func (r reservationRepo) LockResource(_ context.Context, _, resourceID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Locks[resourceID]++
	return nil
}

func (r reservationRepo) HasConflict(_ context.Context, shopID, resourceID uuid.UUID, slot reservation.TimeSlot, excludeID *uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.overlapping(shopID, resourceID, slot.Start(), slot.End(), excludeID), nil
}

func (s *Store) overlapping(shopID, resourceID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) bool {
	for _, rec := range s.st.reservations {
		if rec.ShopID != shopID || rec.ResourceID == nil || *rec.ResourceID != resourceID || !holdsSlot(rec) {
			continue
		}
		if excludeID != nil && rec.ID == *excludeID {
			continue
		}
		if timegrid.Overlaps(rec.Start, rec.End, start, end) {
			return true
		}
	}
	return false
}

// Create enforces the same exclusion rule as the database constraint.
func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fault("Reservations.Create"); err != nil {
		return err
	}
	rec := res.Record()
	if rec.ResourceID != nil && holdsSlot(rec) && r.s.overlapping(rec.ShopID, *rec.ResourceID, rec.Start, rec.End, nil) {
		return infra.WrapRepoErr("reservation overlaps", nil, infra.KindConflict)
	}
	r.s.st.reservations[rec.ID] = rec
	return nil
}

func (r reservationRepo) Get(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.st.reservations[id]
	if !ok {
		return nil, notFound("reservation")
	}
	return reservation.ReconstructReservation(rec), nil
}

func (r reservationRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return r.Get(ctx, id)
}

func (r reservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec := res.Record()
	if _, ok := r.s.st.reservations[rec.ID]; !ok {
		return notFound("reservation")
	}
	if rec.ResourceID != nil && holdsSlot(rec) && r.s.overlapping(rec.ShopID, *rec.ResourceID, rec.Start, rec.End, &rec.ID) {
		return infra.WrapRepoErr("reservation overlaps", nil, infra.KindConflict)
	}
	r.s.st.reservations[rec.ID] = rec
	return nil
}

func (r reservationRepo) UpdateStatus(_ context.Context, c shared.StatusChange) (*reservation.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.st.reservations[c.ID]
	if !ok || rec.ShopID != c.ShopID || !slices.Contains(c.From, rec.Status) {
		return nil, notFound("reservation")
	}

	at, by := c.At, c.By
	switch c.To {
	case reservation.StatusConfirmed:
		rec.ConfirmedAt, rec.ConfirmedBy = &at, &by
	case reservation.StatusCompleted:
		rec.CompletedAt = &at
	case reservation.StatusNoShow:
		rec.NoShowAt, rec.NoShowBy = &at, &by
	case reservation.StatusCancelled:
		rec.CancelledAt, rec.CancelledBy = &at, &by
	}
	rec.Status = c.To
	rec.UpdatedAt = at
	r.s.st.reservations[rec.ID] = rec
	return reservation.ReconstructReservation(rec), nil
}

func (r reservationRepo) ListActiveInRange(_ context.Context, shopID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var recs []reservation.Record
	for _, rec := range r.s.st.reservations {
		if rec.ShopID == shopID && holdsSlot(rec) && rec.Start.Before(to) && rec.End.After(from) {
			recs = append(recs, rec)
		}
	}
	sortRecords(recs)
	out := make([]*reservation.Reservation, len(recs))
	for i, rec := range recs {
		out[i] = reservation.ReconstructReservation(rec)
	}
	return out, nil
}

func sortRecords(recs []reservation.Record) {
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].Start.Equal(recs[j].Start) {
			return recs[i].Start.Before(recs[j].Start)
		}
		return recs[i].ID.String() < recs[j].ID.String()
	})
}

// ------------------------------------------------------------
// idempotency, outbox, users
// ------------------------------------------------------------

type idempotencyRepo struct{ s *Store }

func (r idempotencyRepo) TryInsert(_ context.Context, rec shared.IdempotencyRecord) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := idemKey{rec.Key, rec.ActorKey}
	if _, ok := r.s.st.idempotency[k]; ok {
		return false, nil
	}
	r.s.st.idempotency[k] = rec
	return true, nil
}

func (r idempotencyRepo) Get(_ context.Context, key uuid.UUID, actorKey string) (*shared.IdempotencyRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.st.idempotency[idemKey{key, actorKey}]
	if !ok {
		return nil, notFound("idempotency key")
	}
	return &rec, nil
}

func (r idempotencyRepo) ClaimExpired(_ context.Context, rec shared.IdempotencyRecord) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := idemKey{rec.Key, rec.ActorKey}
	cur, ok := r.s.st.idempotency[k]
	if !ok || cur.ExpiresAt.After(r.s.now()) {
		return false, nil
	}
	r.s.st.idempotency[k] = rec
	return true, nil
}

func (r idempotencyRepo) MarkCompleted(_ context.Context, key uuid.UUID, actorKey string, reservationID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := idemKey{key, actorKey}
	rec, ok := r.s.st.idempotency[k]
	if !ok {
		return notFound("idempotency key")
	}
	rec.Status = shared.IdempotencyCompleted
	rec.ResultReservationID = &reservationID
	r.s.st.idempotency[k] = rec
	return nil
}

func (r idempotencyRepo) Release(_ context.Context, key uuid.UUID, actorKey string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.idempotency, idemKey{key, actorKey})
	return nil
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.jobs = append(r.s.st.jobs, Job{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) IncrementNoShowCount(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.noShows[userID]++
	return nil
}

// ------------------------------------------------------------
// read side
// ------------------------------------------------------------

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.st.reservations[id]
	if !ok {
		return nil, notFound("reservation")
	}
	return s.view(rec), nil
}

func (s *Store) List(_ context.Context, shopID uuid.UUID, f queries.ReservationFilter) ([]*queries.ReservationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.filtered(shopID, f)
	sortRecords(recs)

	if f.Offset >= len(recs) {
		return []*queries.ReservationView{}, nil
	}
	recs = recs[f.Offset:]
	if f.Limit > 0 && f.Limit < len(recs) {
		recs = recs[:f.Limit]
	}
	out := make([]*queries.ReservationView, len(recs))
	for i, rec := range recs {
		out[i] = s.view(rec)
	}
	return out, nil
}

func (s *Store) Count(_ context.Context, shopID uuid.UUID, f queries.ReservationFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filtered(shopID, f))), nil
}

func (s *Store) CountByStatus(_ context.Context, shopID uuid.UUID, from, to *time.Time) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]int64{}
	for _, rec := range s.filtered(shopID, queries.ReservationFilter{From: from, To: to}) {
		out[string(rec.Status)]++
	}
	return out, nil
}

func (s *Store) filtered(shopID uuid.UUID, f queries.ReservationFilter) []reservation.Record {
	var out []reservation.Record
	for _, rec := range s.st.reservations {
		switch {
		case rec.ShopID != shopID:
		case f.Status != nil && string(rec.Status) != *f.Status:
		case f.ServiceID != nil && rec.ServiceID != *f.ServiceID:
		case f.ResourceID != nil && (rec.ResourceID == nil || *rec.ResourceID != *f.ResourceID):
		case f.AppUserID != nil && (rec.AppUserID == nil || *rec.AppUserID != *f.AppUserID):
		case f.From != nil && rec.Start.Before(*f.From):
		case f.To != nil && !rec.Start.Before(*f.To):
		default:
			out = append(out, rec)
		}
	}
	return out
}

func (s *Store) view(rec reservation.Record) *queries.ReservationView {
	v := &queries.ReservationView{
		ID:                 rec.ID,
		ShopID:             rec.ShopID,
		ServiceID:          rec.ServiceID,
		ResourceID:         rec.ResourceID,
		AppUserID:          rec.AppUserID,
		StartTime:          rec.Start,
		EndTime:            rec.End,
		PartySize:          rec.PartySize,
		Price:              rec.Price,
		Status:             string(rec.Status),
		ConfirmationMode:   string(rec.ConfirmationMode),
		ConfirmedAt:        rec.ConfirmedAt,
		CancelledAt:        rec.CancelledAt,
		CancellationReason: rec.CancellationReason,
		NoShowAt:           rec.NoShowAt,
		CompletedAt:        rec.CompletedAt,
		CustomerNotes:      rec.CustomerNotes,
		InternalNotes:      rec.InternalNotes,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
	if svc, ok := s.st.services[rec.ServiceID]; ok {
		v.ServiceName = svc.Name()
	}
	if rec.ResourceID != nil {
		if res, ok := s.st.resources[*rec.ResourceID]; ok {
			name := res.Name()
			v.ResourceName = &name
		}
	}
	if rec.Guest != nil {
		name := rec.Guest.Name()
		v.GuestName = &name
		v.GuestPhone = rec.Guest.Phone()
		v.GuestEmail = rec.Guest.Email()
	}
	return v
}
