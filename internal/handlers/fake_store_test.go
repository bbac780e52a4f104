package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"

	"inventory-service/internal/common/slug"
	"inventory-service/internal/models"
	"inventory-service/internal/store"
	"inventory-service/internal/validation"
)

const fakeNow int64 = 1715940000

// fakeStore keeps one org per user in memory. failWith makes every operation
// return that error; brokenRows makes reads return rows missing timeCreatedTs.
type fakeStore struct {
	mu         sync.Mutex
	nextID     int64
	orgs       map[int64]*fakeOrg
	failWith   error
	brokenRows bool
}

type fakeOrg struct {
	org         store.Fields
	restaurant  store.Fields
	website     store.Fields
	callcenter  store.Fields
	emailcenter store.Fields
	sections    map[int64]store.Fields
	items       map[int64]store.Fields
}

func newFakeStore() *fakeStore {
	return &fakeStore{orgs: make(map[int64]*fakeOrg)}
}

func (s *fakeStore) entity(fields map[string]interface{}) store.Fields {
	s.nextID++
	out := store.Fields{"id": s.nextID, "timeCreatedTs": fakeNow}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func (s *fakeStore) out(f store.Fields) store.Fields {
	cp := store.Fields{}
	for k, v := range f {
		cp[k] = v
	}
	if s.brokenRows {
		delete(cp, "timeCreatedTs")
	}
	return cp
}

func merge(f store.Fields, update map[string]interface{}) {
	for k, v := range update {
		f[k] = v
	}
}

func (s *fakeStore) lookup(userID int64) (*fakeOrg, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	o, ok := s.orgs[userID]
	if !ok {
		return nil, store.ErrOrgNotFound
	}
	return o, nil
}

func (s *fakeStore) CreateOrg(_ context.Context, userID int64, req validation.OrgCreationRequest) (store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	if _, ok := s.orgs[userID]; ok {
		return nil, store.ErrOrgAlreadyExists
	}
	o := &fakeOrg{
		org:         s.entity(nil),
		restaurant:  s.entity(req.RestaurantFields()),
		website:     s.entity(map[string]interface{}{"subdomain": slug.Make(req.Name)}),
		callcenter:  s.entity(map[string]interface{}{"phoneNumber": models.DefaultPhoneNumber}),
		emailcenter: s.entity(map[string]interface{}{"emailName": models.DefaultEmailName}),
		sections:    make(map[int64]store.Fields),
		items:       make(map[int64]store.Fields),
	}
	s.orgs[userID] = o
	return s.out(o.org), nil
}

func (s *fakeStore) GetOrg(_ context.Context, userID int64) (store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	return s.out(o.org), nil
}

func (s *fakeStore) GetRestaurant(_ context.Context, userID int64) (store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	return s.out(o.restaurant), nil
}

func (s *fakeStore) UpdateRestaurant(_ context.Context, userID int64, req validation.RestaurantUpdateRequest) (store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	merge(o.restaurant, req.Fields())
	return s.out(o.restaurant), nil
}

func (s *fakeStore) CreateMenuSection(_ context.Context, userID int64, req validation.MenuSectionCreationRequest) (store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	section := s.entity(req.Fields())
	o.sections[section["id"].(int64)] = section
	return s.out(section), nil
}

func (s *fakeStore) GetMenuSections(_ context.Context, userID int64) ([]store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	return s.sorted(o.sections), nil
}

func (s *fakeStore) GetMenuSection(_ context.Context, userID, sectionID int64) (store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	section, ok := o.sections[sectionID]
	if !ok {
		return nil, store.ErrSectionNotFound
	}
	return s.out(section), nil
}

func (s *fakeStore) UpdateMenuSection(_ context.Context, userID, sectionID int64, req validation.MenuSectionUpdateRequest) (store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	section, ok := o.sections[sectionID]
	if !ok {
		return nil, store.ErrSectionNotFound
	}
	merge(section, req.Fields())
	return s.out(section), nil
}

func (s *fakeStore) DeleteMenuSection(_ context.Context, userID, sectionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return err
	}
	if _, ok := o.sections[sectionID]; !ok {
		return store.ErrSectionNotFound
	}
	delete(o.sections, sectionID)
	for id, item := range o.items {
		if item["sectionId"] == sectionID {
			delete(o.items, id)
		}
	}
	return nil
}

func (s *fakeStore) CreateMenuItem(_ context.Context, userID int64, req validation.MenuItemCreationRequest) (store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	if _, ok := o.sections[req.SectionID]; !ok {
		return nil, store.ErrSectionNotFound
	}
	item := s.entity(req.Fields())
	o.items[item["id"].(int64)] = item
	return s.out(item), nil
}

func (s *fakeStore) GetMenuItems(_ context.Context, userID int64) ([]store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	return s.sorted(o.items), nil
}

func (s *fakeStore) GetMenuItem(_ context.Context, userID, itemID int64) (store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	item, ok := o.items[itemID]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	return s.out(item), nil
}

func (s *fakeStore) UpdateMenuItem(_ context.Context, userID, itemID int64, req validation.MenuItemUpdateRequest) (store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	item, ok := o.items[itemID]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	merge(item, req.Fields())
	return s.out(item), nil
}

func (s *fakeStore) DeleteMenuItem(_ context.Context, userID, itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return err
	}
	if _, ok := o.items[itemID]; !ok {
		return store.ErrItemNotFound
	}
	delete(o.items, itemID)
	return nil
}

func (s *fakeStore) GetPlatformsWebsite(_ context.Context, userID int64) (store.Fields, error) {
	return s.platform(userID, func(o *fakeOrg) store.Fields { return o.website }, nil)
}

func (s *fakeStore) UpdatePlatformsWebsite(_ context.Context, userID int64, req validation.PlatformsWebsiteUpdateRequest) (store.Fields, error) {
	return s.platform(userID, func(o *fakeOrg) store.Fields { return o.website }, req.Fields())
}

func (s *fakeStore) GetPlatformsCallcenter(_ context.Context, userID int64) (store.Fields, error) {
	return s.platform(userID, func(o *fakeOrg) store.Fields { return o.callcenter }, nil)
}

func (s *fakeStore) UpdatePlatformsCallcenter(_ context.Context, userID int64, req validation.PlatformsCallcenterUpdateRequest) (store.Fields, error) {
	return s.platform(userID, func(o *fakeOrg) store.Fields { return o.callcenter }, req.Fields())
}

func (s *fakeStore) GetPlatformsEmailcenter(_ context.Context, userID int64) (store.Fields, error) {
	return s.platform(userID, func(o *fakeOrg) store.Fields { return o.emailcenter }, nil)
}

func (s *fakeStore) UpdatePlatformsEmailcenter(_ context.Context, userID int64, req validation.PlatformsEmailcenterUpdateRequest) (store.Fields, error) {
	return s.platform(userID, func(o *fakeOrg) store.Fields { return o.emailcenter }, req.Fields())
}

func (s *fakeStore) platform(userID int64, pick func(*fakeOrg) store.Fields, update map[string]interface{}) (store.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	f := pick(o)
	merge(f, update)
	return s.out(f), nil
}

func (s *fakeStore) sorted(m map[int64]store.Fields) []store.Fields {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]store.Fields, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.out(m[id]))
	}
	return out
}

var errFakeDatabase = errors.New("connection reset by peer")

var _ store.Store = (*fakeStore)(nil)
